package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nova/pkg/app"
	"tableflip.dev/nova/pkg/commands/options"
	"tableflip.dev/nova/pkg/runner/account"
)

type profileOptions struct {
	Name        string
	Bio         string
	Avatar      string
	ClearAvatar bool
	Socials     []string
	Drop        []int
}

// edit applies the flags that were set. Socials are removed before new ones
// are added so printed indexes stay valid.
func (o *profileOptions) edit(cmd *cobra.Command) func(a *app.App) error {
	changed := cmd.Flags().Changed
	return func(a *app.App) error {
		if changed("name") {
			a.Profile.SetName(strings.TrimSpace(o.Name))
		}
		if changed("bio") {
			a.Profile.SetBio(o.Bio)
		}
		if o.ClearAvatar {
			a.Profile.SetAvatar("")
		} else if o.Avatar != "" {
			payload, err := options.ImagePayload(o.Avatar)
			if err != nil {
				return err
			}
			a.Profile.SetAvatar(payload)
		}
		drop := append([]int(nil), o.Drop...)
		sort.Sort(sort.Reverse(sort.IntSlice(drop)))
		for _, i := range drop {
			if !a.Profile.RemoveSocial(i) {
				return fmt.Errorf("no social link at %d", i)
			}
		}
		for _, s := range o.Socials {
			platform, url, ok := strings.Cut(s, "=")
			if !ok {
				return fmt.Errorf("social link %q is not platform=url", s)
			}
			if !a.Profile.AddSocial(platform, url) {
				return fmt.Errorf("social link %q has no url", s)
			}
		}
		return nil
	}
}

func addProfileArgs(cmd *cobra.Command, po *profileOptions) {
	f := cmd.Flags()
	f.StringVar(&po.Name, "name", "", "Display name.")
	f.StringVar(&po.Bio, "bio", "", "Short bio.")
	f.StringVar(&po.Avatar, "avatar", "", "Image file to use as avatar.")
	f.BoolVar(&po.ClearAvatar, "clear-avatar", false, "Remove the avatar.")
	f.StringArrayVar(&po.Socials, "social", nil, "Add a link as platform=url. Repeatable.")
	f.IntSliceVar(&po.Drop, "drop-social", nil, "Remove the link at this index. Repeatable.")
}

func addProfile(topLevel *cobra.Command) {
	po := &profileOptions{}

	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"me"},
		Short:   "Show or change your profile",
		Example: `
nova profile
nova profile --name "Jane Doe" --bio "Writes things down"
nova profile --avatar ~/me.png
nova profile --social github=https://github.com/jane --drop-social 0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				r := account.Profile{
					App:  s.App,
					Edit: po.edit(cmd),
					JSON: output.JSON,
				}
				return r.Do(cmd.Context())
			})
		},
	}

	addProfileArgs(cmd, po)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addAccount(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Cloud account status",
		Long: `Link a cloud account and push your notes to it. Sync is simulated and
takes about two seconds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAccount(cmd, account.Status)
		},
	}

	for _, action := range []struct {
		action account.Action
		short  string
	}{
		{account.Login, "Link a cloud account"},
		{account.Logout, "Unlink the cloud account"},
		{account.Sync, "Push to the linked cloud account"},
	} {
		a := action.action
		cmd.AddCommand(&cobra.Command{
			Use:   string(a),
			Short: action.short,
			Example: `
nova account ` + string(a) + `
`,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runAccount(cmd, a)
			},
		})
	}

	topLevel.AddCommand(cmd)
}

func runAccount(cmd *cobra.Command, a account.Action) error {
	cmd.SilenceUsage = true
	return withSession(func(s *session) error {
		r := account.Account{
			App:    s.App,
			Action: a,
		}
		return r.Do(cmd.Context())
	})
}
