package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/spf13/cobra"
)

type userView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"fullName"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	TOTP      bool       `json:"totp"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func toUserView(u domain.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		Active:    u.Active,
		TOTP:      u.HasTOTP(),
		LastLogin: u.LastLogin,
	}
}

func newUsersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage operator accounts",
	}

	users := func() *service.UserService {
		return &service.UserService{Store: e.store, Hasher: e.hasher, TOTPIssuer: e.cfg.TOTPIssuer}
	}

	var fullName, role, password string
	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			if err := e.openWithHasher(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			u, err := users().Create(cmd.Context(), service.CreateUserInput{
				Username: args[0],
				FullName: fullName,
				Password: pw,
				Role:     role,
			})
			if err != nil {
				return err
			}
			return e.print(cmd, toUserView(u), fmt.Sprintf("created %s (%s, %s)", u.Username, u.Role, u.ID))
		},
	}
	create.Flags().StringVar(&fullName, "full-name", "", "Display name (defaults to the username)")
	create.Flags().StringVar(&role, "role", domain.RoleOperator, "Role: admin|operator")
	create.Flags().StringVar(&password, "password", "", "Password; read from stdin when empty")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			all, err := users().List(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]userView, 0, len(all))
			for _, u := range all {
				views = append(views, toUserView(u))
			}
			if e.out == "json" {
				return e.print(cmd, views, "")
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USERNAME\tROLE\tACTIVE\tTOTP\tLAST LOGIN")
			for _, v := range views {
				last := "-"
				if v.LastLogin != nil {
					last = v.LastLogin.Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%s\n", v.Username, v.Role, v.Active, v.TOTP, last)
			}
			return tw.Flush()
		},
	}

	setActive := func(use, short string, active bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <username>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := e.open(cmd.Context()); err != nil {
					return err
				}
				defer e.close()

				if err := users().SetActive(cmd.Context(), args[0], active); err != nil {
					return err
				}
				return e.print(cmd, map[string]any{"username": args[0], "active": active},
					fmt.Sprintf("%s active=%t", args[0], active))
			},
		}
	}

	var newPassword string
	passwd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Set a new password and end the user's sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, newPassword)
			if err != nil {
				return err
			}
			if err := e.openWithHasher(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			if err := users().SetPassword(cmd.Context(), args[0], pw); err != nil {
				return err
			}
			return e.print(cmd, map[string]string{"username": args[0]}, "password updated for "+args[0])
		},
	}
	passwd.Flags().StringVar(&newPassword, "password", "", "Password; read from stdin when empty")

	cmd.AddCommand(
		create,
		list,
		setActive("disable", "Disable a user and end their sessions", false),
		setActive("enable", "Enable a user", true),
		passwd,
		newTOTPCmd(e, users),
	)
	return cmd
}

func newTOTPCmd(e *env, users func() *service.UserService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totp",
		Short: "Manage the second factor",
	}

	enroll := &cobra.Command{
		Use:   "enroll <username>",
		Short: "Generate a TOTP secret and print the otpauth URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			url, err := users().EnrollTOTP(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.print(cmd, map[string]string{"username": args[0], "url": url}, url)
		},
	}

	disable := &cobra.Command{
		Use:   "disable <username>",
		Short: "Remove the TOTP secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			if err := users().DisableTOTP(cmd.Context(), args[0]); err != nil {
				return err
			}
			return e.print(cmd, map[string]string{"username": args[0]}, "totp disabled for "+args[0])
		},
	}

	cmd.AddCommand(enroll, disable)
	return cmd
}

// readPassword returns flag when set, otherwise the first line of stdin.
func readPassword(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}
