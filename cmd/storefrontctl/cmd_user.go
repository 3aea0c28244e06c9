package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssgeek/commerce/internal/auth"
	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/repository/postgres"
)

var (
	userRole  string
	userState string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage storefront accounts",
}

// storefrontctl user create <username> <password>
var userCreateCmd = &cobra.Command{
	Use:     "create <username> <password>",
	Short:   "Create an account with a bcrypt-hashed password",
	Example: `storefrontctl user create alice s3cret --state OH`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password := args[0], args[1]

		if userRole != domain.RoleUser && userRole != domain.RoleAdmin {
			return fmt.Errorf("--role must be %q or %q", domain.RoleUser, domain.RoleAdmin)
		}
		state := strings.ToUpper(strings.TrimSpace(userState))
		if state != "" && !domain.ValidState(state) {
			return fmt.Errorf("--state must be a two letter code")
		}

		_, logger, db, err := boot(false)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := &domain.User{
			Username:     username,
			PasswordHash: hash,
			Role:         userRole,
			StateCode:    state,
		}
		if err := postgres.NewUserRepository(db, logger).Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("✅ User created successfully!\n\n")
		fmt.Printf("User ID: %d\n", user.ID)
		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Role: %s\n", user.Role)
		if user.StateCode != "" {
			fmt.Printf("State: %s\n", user.StateCode)
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue bearer tokens",
}

// storefrontctl token issue <username> <password>
var tokenIssueCmd = &cobra.Command{
	Use:   "issue <username> <password>",
	Short: "Check credentials and print a signed bearer token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := boot(false)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		user, err := postgres.NewUserRepository(db, logger).GetByUsername(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, args[1]) {
			return fmt.Errorf("invalid username or password")
		}

		token, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).Issue(user.ID, user.Role)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}

		fmt.Printf("Token valid for %s. Use it in the Authorization header:\n", cfg.Auth.TokenTTL)
		fmt.Printf("Authorization: Bearer %s\n", token)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userRole, "role", domain.RoleUser, "account role: user or admin")
	userCreateCmd.Flags().StringVar(&userState, "state", "", "two letter state code used for sales tax")
	userCmd.AddCommand(userCreateCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
}
