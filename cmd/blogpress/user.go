package main

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"blogpress/internal/models"
	"blogpress/internal/store"
)

// User creation flags
const (
	emailFlag    = "email"
	nameFlag     = "name"
	passwordFlag = "password"
	roleFlag     = "role"
)

var userCreateFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email address used to sign in (required)",
	},
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Value: "",
		Usage: "Display name (required)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Initial password (required)",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: string(models.RoleUser),
		Usage: "Account role: admin or user",
	},
}

// newUserInput is what "user create" needs to insert an account.
type newUserInput struct {
	email    string
	name     string
	password string
	role     models.Role
}

// validate reports every missing or malformed field at once.
func (in newUserInput) validate() error {
	var problems []string
	if in.email == "" {
		problems = append(problems, "--email is required")
	} else if !strings.Contains(in.email, "@") {
		problems = append(problems, "--email must be an email address")
	}
	if in.name == "" {
		problems = append(problems, "--name is required")
	}
	if in.password == "" {
		problems = append(problems, "--password is required")
	}
	if !in.role.Valid() {
		problems = append(problems, fmt.Sprintf("--role must be admin or user, got %q", in.role))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (a *app) newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin or reader account",
		Example: `  blogpress user create --email editor@example.com --name Editor --password secret --role admin
  blogpress user create --email reader@example.com --name Reader --password secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := newUserInput{
				email:    strings.TrimSpace(userCreateFlags[emailFlag].GetString()),
				name:     strings.TrimSpace(userCreateFlags[nameFlag].GetString()),
				password: userCreateFlags[passwordFlag].GetString(),
				role:     models.Role(strings.ToLower(userCreateFlags[roleFlag].GetString())),
			}
			if err := in.validate(); err != nil {
				return err
			}

			return a.withDB(cmd.Context(), func(db *sql.DB) error {
				users := store.NewUserStore(db)

				existing, err := users.FindByEmail(cmd.Context(), in.email)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("a user with email %s already exists", in.email)
				}

				u, err := users.Create(cmd.Context(), in.email, in.password, in.name, in.role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s user %d (%s)\n", u.Role, u.ID, u.Email)
				return nil
			})
		},
	}
	cobraflags.RegisterMap(create, userCreateFlags)

	cmd.AddCommand(create)
	return cmd
}
