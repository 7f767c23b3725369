package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/session"
)

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.session.Login(cmd.Context(), email, password)
			return report(cmd, res)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out, clearing the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.session.Logout(cmd.Context()))
		},
	}
}

func (a *app) registerCommand() *cobra.Command {
	var name, email, password, phone, cep string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"name":     name,
				"email":    email,
				"password": password,
			}
			if phone != "" {
				payload["phone"] = phone
			}
			if cep != "" {
				addr, err := a.cep.Lookup(cmd.Context(), cep)
				if err != nil {
					return err
				}
				payload["address"] = addr
			}
			return report(cmd, a.session.Register(cmd.Context(), payload))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&cep, "cep", "", "postal code to resolve into the address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) forgotPasswordCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password recovery email",
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd, a.session.ForgotPassword(cmd.Context(), email))
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.session.IsAuthenticated() {
				return errors.New("not signed in")
			}
			profile, ok := a.session.CurrentUser()
			if !ok {
				// token present, profile missing: a legal transient state,
				// fall back to fetching it
				user, err := a.users.Profile(cmd.Context())
				if err != nil {
					return err
				}
				profile = session.Profile{
					"id": user.ID, "name": user.Name,
					"email": user.Email, "role": string(user.Role),
				}
			}
			cmd.Printf("%s <%s> (%s)\n", profile.Name(), profile.Email(), profile.Role())
			return nil
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.session.IsAuthenticated() {
				cmd.Println("authenticated")
			} else {
				cmd.Println("anonymous")
			}
			return nil
		},
	}
}

// report prints a Result and converts a failed one into a command error.
func report(cmd *cobra.Command, res session.Result) error {
	if !res.OK {
		return errors.New(res.Message)
	}
	cmd.Println(res.Message)
	return nil
}

func formatAddress(addr *domain.Address) string {
	if addr == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s/%s (%s)", addr.Street, addr.District, addr.City, addr.State, addr.CEP)
}
