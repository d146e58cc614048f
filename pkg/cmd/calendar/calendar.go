package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/rally-championship/pkg/cmd/output"
	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/season"
)

// Calendar is the rendered result of the calendar command.
type Calendar struct {
	Season    string        `json:"season"    yaml:"season"`
	Year      int           `json:"year"      yaml:"year"`
	Completed int           `json:"completed" yaml:"completed"`
	Progress  float64       `json:"progress"  yaml:"progress"`
	Events    []model.Event `json:"events"    yaml:"events"`
}

func NewCalendarCmd() *cobra.Command {
	var seasonFile, format string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "shows the events of a season and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := season.Load(seasonFile)
			if err != nil {
				return err
			}
			c := &Calendar{
				Season:    data.Name,
				Year:      data.Year,
				Completed: data.CompletedEvents(),
				Progress:  data.Progress(),
				Events:    data.Events,
			}
			return output.Write(cmd.OutOrStdout(), f, c, c.table)
		},
	}
	cmd.Flags().StringVarP(&seasonFile,
		"season",
		"s",
		"season.yml",
		"season file containing calendar and results")
	cmd.Flags().StringVarP(&format,
		"output",
		"o",
		string(output.Table),
		"output format (table, json, yaml)")
	return cmd
}

func (c *Calendar) table(w io.Writer) error {
	fmt.Fprintf(w, "%s %d\n", c.Season, c.Year)
	output.Row(w, "#", "EVENT", "NAME", "DATE", "TIER", "TERRAIN", "POWERSTAGE", "STATUS")
	for i := range c.Events {
		e := &c.Events[i]
		date := "-"
		if !e.Date.IsZero() {
			date = e.Date.Format(time.DateOnly)
		}
		ps := "no"
		if e.PowerStage {
			ps = "yes"
		}
		output.Row(w, i+1, e.ID, e.Name, date, e.Tier, e.Terrain, ps, e.Status)
	}
	fmt.Fprintf(w, "progress: %.0f%% (%d of %d events completed)\n",
		c.Progress, c.Completed, len(c.Events))
	return nil
}
