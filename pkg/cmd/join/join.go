package join

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/pkg/cmd/output"
	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/onboarding"
)

type options struct {
	form       onboarding.Form
	experience string
	class      string
	output     string
}

func NewJoinCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "join",
		Short: "registers a new championship member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.form.Name, "name", "", "full name")
	cmd.Flags().StringVar(&opts.form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.form.Handle, "handle", "", "racing handle")
	cmd.Flags().StringVar(&opts.experience,
		"experience",
		"",
		"racing experience (rookie, amateur, pro, legend)")
	cmd.Flags().StringVar(&opts.class,
		"class",
		"",
		"preferred competition class (top, mid, entry)")
	cmd.Flags().StringVar(&opts.form.Platform, "platform", "", "gaming platform")
	cmd.Flags().StringVar(&opts.form.Timezone, "timezone", "", "timezone")
	cmd.Flags().StringVarP(&opts.output,
		"output",
		"o",
		string(output.Table),
		"output format (table, json, yaml)")
	return cmd
}

func runJoin(w io.Writer, opts *options) error {
	format, err := output.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	form := opts.form
	// empty values are left to the wizard guards
	if opts.experience != "" {
		if form.Experience, err = onboarding.ParseExperience(opts.experience); err != nil {
			return err
		}
	}
	if opts.class != "" {
		if form.PreferredClass, err = model.ParseCompetitionClass(opts.class); err != nil {
			return err
		}
	}

	wizard := onboarding.NewWizard()
	wizard.Form = form
	reg, err := wizard.Run()
	if err != nil {
		log.Debug("onboarding stopped",
			log.String("step", wizard.Step().String()),
			log.Int("progress", wizard.Progress()))
		return err
	}
	return output.Write(w, format, reg, func(w io.Writer) error {
		output.Row(w, "member id", reg.MemberID)
		output.Row(w, "name", reg.Form.Name)
		output.Row(w, "handle", reg.Form.Handle)
		output.Row(w, "experience", reg.Form.Experience)
		output.Row(w, "class", reg.Form.PreferredClass)
		output.Row(w, "registered", reg.RegisteredAt.Format(time.RFC3339))
		fmt.Fprintln(w, "welcome to the championship!")
		return nil
	})
}
