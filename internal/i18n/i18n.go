// Package i18n holds the static UI dictionary of the demo frontend.
package i18n

// Lang is a supported UI language code.
type Lang string

const (
	LangEN Lang = "en"
	LangRU Lang = "ru"
)

// DefaultLang matches the default of the original demo.
const DefaultLang = LangRU

var dict = map[Lang]map[string]string{
	LangEN: {
		"login":              "Login",
		"loginBtn":           "Sign In",
		"register":           "Register",
		"registerBtn":        "Sign Up",
		"email":              "Email",
		"password":           "Password",
		"files":              "Files",
		"search":             "Search",
		"searchText":         "Press Enter to Search",
		"profile":            "Profile",
		"logout":             "Logout",
		"newFile":            "New file",
		"newDir":             "New folder",
		"itemOne":            "item",
		"item":               "items",
		"items":              "items",
		"name":               "Name",
		"date":               "Date",
		"size":               "Size",
		"modified":           "Modified",
		"noFiles":            "No files",
		"myFiles":            "My Files",
		"page":               "Page",
		"of":                 "of",
		"createAccount":      "Create Account",
		"alreadyHaveAccount": "Already have an account?",
		"loading":            "Loading...",
		"creating":           "Creating...",
		"create":             "Create",
		"cancel":             "Cancel",
		"save":               "Save",
		"download":           "Download",
		"rename":             "Rename",
		"close":              "Close",
		"forward":            "Forward",
		"back":               "Back",
		"fileNotFound":       "File not found",
		"delete":             "Delete",
		"edit":               "Edit",
		"upload":             "Upload",
		"file":               "File",
		"dir":                "Folder",
		"open":               "Open",
	},
	LangRU: {
		"login":              "Вход",
		"loginBtn":           "Войти",
		"register":           "Регистрация",
		"registerBtn":        "Зарегистрироваться",
		"email":              "Почта",
		"password":           "Пароль",
		"files":              "Файлы",
		"search":             "Поиск",
		"searchText":         "Нажмите Enter для поиска",
		"profile":            "Профиль",
		"logout":             "Выйти",
		"newFile":            "Новый Файл",
		"newDir":             "Новую Папку",
		"itemOne":            "элемент",
		"item":               "элемента",
		"items":              "элементов",
		"name":               "Имя",
		"date":               "Дата",
		"size":               "Размер",
		"modified":           "Изменен",
		"noFiles":            "Нет Файлов",
		"myFiles":            "Мои Файлы",
		"page":               "Страница",
		"of":                 "из",
		"createAccount":      "Создать аккаунт",
		"alreadyHaveAccount": "Уже есть аккаунт?",
		"loading":            "Загрузка...",
		"creating":           "Создание...",
		"create":             "Создать",
		"cancel":             "Отмена",
		"save":               "Сохранить",
		"download":           "Скачать",
		"rename":             "Переименовать",
		"close":              "Закрыть",
		"forward":            "Вперед",
		"back":               "Назад",
		"fileNotFound":       "Файл не найден",
		"delete":             "Удалить",
		"edit":               "Редактировать",
		"upload":             "Загрузить",
		"file":               "Файл",
		"dir":                "Папку",
		"open":               "Открыть",
	},
}

// Supported reports whether lang has a dictionary.
func Supported(lang Lang) bool {
	_, ok := dict[lang]
	return ok
}

// Langs lists the supported language codes.
func Langs() []Lang {
	return []Lang{LangEN, LangRU}
}

// T looks up key for lang, falling back to English, then to the key itself.
func T(lang Lang, key string) string {
	if d, ok := dict[lang]; ok {
		if v, ok := d[key]; ok {
			return v
		}
	}
	if v, ok := dict[LangEN][key]; ok {
		return v
	}
	return key
}

// Dict returns the full dictionary for lang (nil if unsupported). Handlers use
// it to serve the table to the frontend in one request.
func Dict(lang Lang) map[string]string {
	return dict[lang]
}
