package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/khalidmt90/subnav/internal/services"
	"github.com/spf13/cobra"
)

// userCmd represents the user command group
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User management",
	Long:  `Manage app users, including listing users and creating accounts by hand.`,
}

// userListCmd lists all users
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Run: func(cmd *cobra.Command, args []string) {
		if userService == nil {
			fmt.Fprintln(os.Stderr, "error: user service not initialized")
			os.Exit(1)
		}

		users, err := userService.ListUsers()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to list users: %v\n", err)
			os.Exit(1)
		}

		if len(users) == 0 {
			fmt.Println("No users yet.")
			return
		}

		fmt.Println("Users:")
		fmt.Println("----------------------------------------")
		fmt.Printf("%-6s %-30s %-20s %s\n", "ID", "Email", "Name", "Created")
		fmt.Println("----------------------------------------")
		for _, u := range users {
			createdAt := u.CreatedAt.Format("2006-01-02 15:04:05")
			fmt.Printf("%-6d %-30s %-20s %s\n", u.ID, u.Email, u.DisplayName, createdAt)
		}
		fmt.Println("----------------------------------------")
		fmt.Printf("%d user(s)\n", len(users))
	},
}

// userCreateCmd creates a user without going through OAuth login
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long:  `Interactively create a user account. Normally accounts are created on first login; this is for testing and recovery.`,
	Run: func(cmd *cobra.Command, args []string) {
		if userService == nil {
			fmt.Fprintln(os.Stderr, "error: user service not initialized")
			os.Exit(1)
		}

		reader := bufio.NewReader(os.Stdin)

		fmt.Print("Email: ")
		email, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to read input: %v\n", err)
			os.Exit(1)
		}
		email = strings.TrimSpace(email)
		if email == "" {
			fmt.Fprintln(os.Stderr, "error: email must not be empty")
			os.Exit(1)
		}

		fmt.Print("Display name (optional, press enter to skip): ")
		name, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to read input: %v\n", err)
			os.Exit(1)
		}
		name = strings.TrimSpace(name)

		user, isNew, err := userService.GetOrCreateUser(services.LoginProfile{
			Email:       email,
			DisplayName: name,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to create user: %v\n", err)
			os.Exit(1)
		}
		if !isNew {
			fmt.Printf("User with email %s already exists (ID: %d).\n", user.Email, user.ID)
			return
		}

		fmt.Println()
		fmt.Println("User created.")
		fmt.Printf("  ID: %d\n", user.ID)
		fmt.Printf("  Email: %s\n", user.Email)
		fmt.Printf("  Name: %s\n", user.DisplayName)
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
}
