package standings

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/pkg/cmd/output"
	"github.com/mpapenbr/rally-championship/pkg/config"
	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/season"
	"github.com/mpapenbr/rally-championship/pkg/service"
	standingsCalc "github.com/mpapenbr/rally-championship/pkg/standings"
)

type options struct {
	config.Config
	after int
	teams bool
	trend bool
	watch bool
}

// Report is the rendered result of the standings command.
type Report struct {
	Season  string                   `json:"season"            yaml:"season"`
	Year    int                      `json:"year"              yaml:"year"`
	After   int                      `json:"after"             yaml:"after"`
	Drivers []model.StandingsRow     `json:"drivers"           yaml:"drivers"`
	Teams   []model.TeamStandingsRow `json:"teams,omitempty"   yaml:"teams,omitempty"`
	Trend   []model.Movement         `json:"trend,omitempty"   yaml:"trend,omitempty"`
}

func NewStandingsCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "computes the championship standings of a season file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("after") {
				opts.after = -1
			}
			format, err := output.ParseFormat(opts.Output)
			if err != nil {
				return err
			}
			svc, err := newService(opts)
			if err != nil {
				return err
			}
			defer svc.Close()
			ctx := log.AddToContext(cmd.Context(),
				log.Default().Named("standings").With(log.String("season", opts.SeasonFile)))
			if opts.watch {
				ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
				defer cancel()
				return watch(ctx, cmd.OutOrStdout(), svc, opts, format)
			}
			return render(ctx, cmd.OutOrStdout(), svc, opts, format)
		},
	}
	cmd.Flags().StringVarP(&opts.SeasonFile,
		"season",
		"s",
		"season.yml",
		"season file containing calendar and results")
	cmd.Flags().IntVar(&opts.after,
		"after",
		0,
		"standings after the first N completed events (default all)")
	cmd.Flags().BoolVar(&opts.teams,
		"teams",
		false,
		"include team standings")
	cmd.Flags().BoolVar(&opts.trend,
		"trend",
		false,
		"include position changes compared to the previous event")
	cmd.Flags().BoolVar(&opts.watch,
		"watch",
		false,
		"recompute the standings whenever the season file changes")
	cmd.Flags().StringVarP(&opts.Output,
		"output",
		"o",
		string(output.Table),
		"output format (table, json, yaml)")
	cmd.Flags().IntVar(&opts.MaxResults,
		"max-results",
		standingsCalc.DefaultMaxResults,
		"maximum number of results accepted per computation")
	cmd.Flags().DurationVar(&opts.CacheExpiration,
		"cache-expiration",
		10*time.Minute,
		"duration computed standings are kept")
	return cmd
}

func newService(opts *options) (*service.StandingsService, error) {
	data, err := season.Load(opts.SeasonFile)
	if err != nil {
		return nil, err
	}
	store, err := season.NewStore(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.SeasonFile, err)
	}
	log.Debug("season loaded",
		log.String("file", opts.SeasonFile),
		log.Int("events", len(data.Events)),
		log.Int("results", len(data.Results)))
	return service.NewStandingsService(
		service.WithStore(store),
		service.WithMaxResults(opts.MaxResults),
		service.WithCacheExpiration(opts.CacheExpiration))
}

//nolint:whitespace // can't make both editor and linter happy
func buildReport(
	ctx context.Context, svc *service.StandingsService, opts *options,
) (*Report, error) {
	var res *service.Standings
	var err error
	if opts.after < 0 {
		res, err = svc.Standings(ctx)
	} else {
		res, err = svc.StandingsAfter(ctx, opts.after)
	}
	if err != nil {
		return nil, err
	}
	snap := svc.Snapshot()
	ret := &Report{
		Season:  snap.Name,
		Year:    snap.Year,
		After:   res.After,
		Drivers: res.Drivers,
	}
	if opts.teams {
		ret.Teams = res.Teams
	}
	if opts.trend {
		if ret.Trend, err = svc.TrendAfter(ctx, res.After); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

//nolint:whitespace // can't make both editor and linter happy
func render(
	ctx context.Context, w io.Writer, svc *service.StandingsService,
	opts *options, format output.Format,
) error {
	report, err := buildReport(ctx, svc, opts)
	if err != nil {
		return err
	}
	return output.Write(w, format, report, report.table)
}

func (r *Report) table(w io.Writer) error {
	fmt.Fprintf(w, "%s %d after %d events\n", r.Season, r.Year, r.After)
	output.Row(w, "RANK", "ENTRANT", "POINTS", "WINS", "PODIUMS", "EVENTS", "BEST")
	for i := range r.Drivers {
		d := &r.Drivers[i]
		output.Row(w, d.Rank, d.EntrantID, d.Points, d.Wins, d.Podiums, d.Events, d.BestFinish)
	}
	if len(r.Teams) > 0 {
		fmt.Fprintln(w)
		output.Row(w, "RANK", "TEAM", "POINTS", "WINS", "PODIUMS", "ENTRANTS")
		for i := range r.Teams {
			t := &r.Teams[i]
			output.Row(w, t.Rank, t.Team, t.Points, t.Wins, t.Podiums,
				strings.Join(t.Entrants, ","))
		}
	}
	if len(r.Trend) > 0 {
		fmt.Fprintln(w)
		output.Row(w, "ENTRANT", "RANK", "PREVIOUS", "CHANGE", "DIRECTION")
		for i := range r.Trend {
			m := &r.Trend[i]
			prev := "-"
			if m.Direction != model.DirectionNew {
				prev = fmt.Sprint(m.PreviousRank)
			}
			output.Row(w, m.EntrantID, m.Rank, prev, fmt.Sprintf("%+d", m.Change), m.Direction)
		}
	}
	return nil
}
