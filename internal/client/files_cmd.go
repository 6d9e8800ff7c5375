package client

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"filedesk-backend/internal/models"

	"github.com/spf13/cobra"
)

var (
	lsParent  string
	newParent string
	newAsDir  bool
)

func init() {
	lsCmd.Flags().StringVar(&lsParent, "parent", models.RootParent, "parent directory id")
	newCmd.Flags().StringVar(&newParent, "parent", models.RootParent, "parent directory id")
	newCmd.Flags().BoolVar(&newAsDir, "dir", false, "create a directory instead of a file")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List entries under a directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var entries []models.Entry
		path := "/files?parent=" + url.QueryEscape(lsParent)
		if err := call(http.MethodGet, path, nil, &entries); err != nil {
			fmt.Println("Error:", err)
			return
		}

		if len(entries) == 0 {
			fmt.Println("(empty)")
			return
		}
		for _, e := range entries {
			size := "-"
			if e.Size != nil {
				size = fmt.Sprintf("%d", *e.Size)
			}
			modified := time.UnixMilli(e.Modified).Format(time.RFC822)
			fmt.Printf("%-4s %-10s %8s  %s  [%s]\n", e.Type, e.Name, size, modified, e.ID)
		}
	},
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a file or directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		entryType := "file"
		if newAsDir {
			entryType = "dir"
		}

		var entry models.Entry
		err := call(http.MethodPost, "/files", map[string]string{
			"name":   args[0],
			"parent": newParent,
			"type":   entryType,
		}, &entry)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("Created %s %q [%s]\n", entry.Type, entry.Name, entry.ID)
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <id>",
	Short: "Print a file's content",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var entry models.Entry
		if err := call(http.MethodGet, "/files/"+args[0], nil, &entry); err != nil {
			fmt.Println("Error:", err)
			return
		}
		if entry.Content != nil {
			fmt.Print(*entry.Content)
			fmt.Println()
		}
	},
}

var saveCmd = &cobra.Command{
	Use:   "save <id> <content>",
	Short: "Replace a file's content",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var entry models.Entry
		err := call(http.MethodPut, "/files/"+args[0]+"/content",
			map[string]string{"content": args[1]}, &entry)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("Saved %q (%d bytes)\n", entry.Name, *entry.Size)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename an entry",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var entry models.Entry
		err := call(http.MethodPost, "/files/"+args[0]+"/rename",
			map[string]string{"name": args[1]}, &entry)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("Renamed to %q\n", entry.Name)
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := call(http.MethodDelete, "/files/"+args[0], nil, nil); err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Println("Deleted.")
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv <id> <new-parent-id>",
	Short: "Move an entry to another directory",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var entry models.Entry
		err := call(http.MethodPost, "/files/"+args[0]+"/move",
			map[string]string{"parent": args[1]}, &entry)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("Moved %q to %s\n", entry.Name, entry.Parent)
	},
}
