package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-backend/internal/platform/db"
	"library-backend/internal/users"
)

type UserAddOptions struct {
	*RootOptions
	Username string
	Password string
	Role     string
}

// NewUserCommand は初期管理者の投入など、API を通さないユーザー操作用
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users directly in the database",
	}

	add := &cobra.Command{
		Use:          "add",
		Short:        "Register a user",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load()
			if err != nil {
				return err
			}
			conn, err := db.Connect(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer conn.Close()

			svc := users.NewService(users.NewStore(db.Wrap(conn)))
			res, err := svc.CreateUser(cmd.Context(), users.CreateUserRequest{
				Username: opts.Username,
				Password: opts.Password,
				RoleType: users.RoleType(opts.Role),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", res.ID, res.Username, res.RoleType)
			return nil
		},
	}
	add.Flags().StringVarP(&opts.Username, "username", "u", "", "login name (required)")
	add.Flags().StringVarP(&opts.Password, "password", "p", "", "password (required)")
	add.Flags().StringVar(&opts.Role, "role", string(users.Admin), "READER|LIBRARIAN|ADMIN")
	_ = add.MarkFlagRequired("username")
	_ = add.MarkFlagRequired("password")

	cmd.AddCommand(add)
	return cmd
}
