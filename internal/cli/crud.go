package cli

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/services"
)

func (a *app) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.users.List(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			for _, user := range result.Items {
				cmd.Printf("%s\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, user.Role)
			}
			cmd.Printf("page %d/%d (%d total)\n", result.Page, pages(result.Total, limit), result.Total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 10, "page size")

	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.users.Profile(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
			if user.Address != nil {
				cmd.Println(formatAddress(user.Address))
			}
			return nil
		},
	}

	var input services.ProfileInput
	var cep string
	update := &cobra.Command{
		Use:   "update-profile",
		Short: "Update the signed-in account's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cep != "" {
				addr, err := a.cep.Lookup(cmd.Context(), cep)
				if err != nil {
					return err
				}
				input.Address = addr
			}
			user, err := a.users.UpdateProfile(cmd.Context(), input)
			if err != nil {
				return err
			}
			cmd.Printf("profile updated: %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	update.Flags().StringVar(&input.Name, "name", "", "display name")
	update.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	update.Flags().StringVar(&cep, "cep", "", "postal code to resolve into the address")

	var current, next string
	password := &cobra.Command{
		Use:   "change-password",
		Short: "Change the signed-in account's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.users.ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			cmd.Println("password changed")
			return nil
		},
	}
	password.Flags().StringVar(&current, "current", "", "current password")
	password.Flags().StringVar(&next, "new", "", "new password")
	_ = password.MarkFlagRequired("current")
	_ = password.MarkFlagRequired("new")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("user removed")
			return nil
		},
	}

	cmd.AddCommand(list, profile, update, password, remove)
	return cmd
}

func (a *app) employeesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"funcionarios"},
		Short:   "Manage employees",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.employees.List(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			for _, emp := range result.Items {
				active := "inactive"
				if emp.Active {
					active = "active"
				}
				cmd.Printf("%s\t%s\t%s\t%s\n", emp.ID, emp.Name, emp.Position, active)
			}
			cmd.Printf("page %d/%d (%d total)\n", result.Page, pages(result.Total, limit), result.Total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 10, "page size")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emp, err := a.employees.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%s <%s> - %s\n", emp.Name, emp.Email, emp.Position)
			return nil
		},
	}

	var input services.EmployeeInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Register an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Active = true
			emp, err := a.employees.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			cmd.Printf("created %s\n", emp.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Name, "name", "", "employee name")
	create.Flags().StringVar(&input.Email, "email", "", "employee email")
	create.Flags().StringVar(&input.Position, "position", "", "employee position")
	create.Flags().StringVar(&input.Phone, "phone", "", "phone number")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("position")

	var updated services.EmployeeInput
	var active bool
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite an employee record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updated.Active = active
			emp, err := a.employees.Update(cmd.Context(), args[0], updated)
			if err != nil {
				return err
			}
			cmd.Printf("updated %s\n", emp.ID)
			return nil
		},
	}
	update.Flags().StringVar(&updated.Name, "name", "", "employee name")
	update.Flags().StringVar(&updated.Email, "email", "", "employee email")
	update.Flags().StringVar(&updated.Position, "position", "", "employee position")
	update.Flags().StringVar(&updated.Phone, "phone", "", "phone number")
	update.Flags().BoolVar(&active, "active", true, "whether the employee is active")
	_ = update.MarkFlagRequired("name")
	_ = update.MarkFlagRequired("position")

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.employees.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("employee removed")
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}

func (a *app) subscriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Manage subscriptions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every subscription (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := a.subs.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, sub := range subs {
				cmd.Printf("%s\t%s\t%s\t%.2f\n", sub.ID, sub.Plan, sub.Status, sub.Price)
			}
			return nil
		},
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List the signed-in account's subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := a.subs.Mine(cmd.Context())
			if err != nil {
				return err
			}
			for _, sub := range subs {
				cmd.Printf("%s\t%s\t%s\t%.2f\n", sub.ID, sub.Plan, sub.Status, sub.Price)
			}
			return nil
		},
	}

	var input services.SubscriptionInput
	var status string
	create := &cobra.Command{
		Use:   "create",
		Short: "Open a subscription for an account (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Status = domain.SubscriptionStatus(status)
			sub, err := a.subs.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			cmd.Printf("created %s (%s)\n", sub.ID, sub.Status)
			return nil
		},
	}
	create.Flags().StringVar(&input.UserID, "user", "", "account id the subscription belongs to")
	create.Flags().StringVar(&input.Plan, "plan", "", "plan name")
	create.Flags().Float64Var(&input.Price, "price", 0, "monthly price")
	create.Flags().StringVar(&status, "status", "", "initial status")
	_ = create.MarkFlagRequired("user")
	_ = create.MarkFlagRequired("plan")

	var changed services.SubscriptionInput
	var changedStatus string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite a subscription (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed.Status = domain.SubscriptionStatus(changedStatus)
			sub, err := a.subs.Update(cmd.Context(), args[0], changed)
			if err != nil {
				return err
			}
			cmd.Printf("updated %s (%s)\n", sub.ID, sub.Status)
			return nil
		},
	}
	update.Flags().StringVar(&changed.UserID, "user", "", "account id the subscription belongs to")
	update.Flags().StringVar(&changed.Plan, "plan", "", "plan name")
	update.Flags().Float64Var(&changed.Price, "price", 0, "monthly price")
	update.Flags().StringVar(&changedStatus, "status", "", "new status")

	cancel := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.subs.Cancel(cmd.Context(), args[0]); err != nil {
				return err
			}
			cmd.Println("subscription cancelled")
			return nil
		},
	}

	cmd.AddCommand(list, mine, create, update, cancel)
	return cmd
}

func (a *app) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard aggregates",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.dashboard.Stats(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("users: %d\nemployees: %d\nactive subscriptions: %d\nmonthly revenue: %.2f\n",
				stats.TotalUsers, stats.TotalEmployees, stats.ActiveSubscriptions, stats.MonthlyRevenue)
			return nil
		},
	}
}

func (a *app) cepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cep <code>",
		Short: "Resolve a postal code into an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.cep.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cmd.Println(formatAddress(addr))
			return nil
		},
	}
}

func pages(total, limit int) int {
	if limit < 1 {
		limit = 10
	}
	n := total / limit
	if total%limit != 0 || n == 0 {
		n++
	}
	return n
}
