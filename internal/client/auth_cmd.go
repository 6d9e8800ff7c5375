package client

import (
	"fmt"
	"net/http"

	"filedesk-backend/internal/models"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <name> <password>",
	Short: "Create an account and start a session",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		var result models.AuthResult
		err := call(http.MethodPost, "/auth/register", map[string]string{
			"email":    args[0],
			"name":     args[1],
			"password": args[2],
		}, &result)
		if err != nil {
			fmt.Println("Register failed:", err)
			return
		}

		cfg.Token = result.Token
		if err := saveConfig(); err != nil {
			fmt.Println("Warning: could not save token:", err)
		}
		fmt.Printf("Registered as %s (%s)\n", result.User.Name, result.User.Email)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and cache the session token",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var result models.AuthResult
		err := call(http.MethodPost, "/auth/login", map[string]string{
			"email":    args[0],
			"password": args[1],
		}, &result)
		if err != nil {
			fmt.Println("Login failed:", err)
			return
		}

		cfg.Token = result.Token
		if err := saveConfig(); err != nil {
			fmt.Println("Warning: could not save token:", err)
		}
		fmt.Printf("Logged in as %s (%s)\n", result.User.Name, result.User.Email)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and drop the cached token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := call(http.MethodPost, "/auth/logout", nil, nil); err != nil {
			fmt.Println("Logout failed:", err)
			return
		}

		cfg.Token = ""
		if err := saveConfig(); err != nil {
			fmt.Println("Warning: could not update config:", err)
		}
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var user models.PublicUser
		if err := call(http.MethodGet, "/auth/whoami", nil, &user); err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
	},
}
