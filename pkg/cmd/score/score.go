package score

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/pkg/cmd/output"
	"github.com/mpapenbr/rally-championship/pkg/model"
	"github.com/mpapenbr/rally-championship/pkg/scoring"
	"github.com/mpapenbr/rally-championship/pkg/season"
)

type options struct {
	season     string
	class      string
	tier       string
	position   int
	stageWins  int
	powerStage int
	output     string
}

// Result is the rendered result of the score command.
type Result struct {
	Class              model.CompetitionClass `json:"class"              yaml:"class"`
	Tier               model.EventTier        `json:"tier"               yaml:"tier"`
	Position           int                    `json:"position"           yaml:"position"`
	StageWins          int                    `json:"stageWins"          yaml:"stageWins"`
	PowerStagePosition int                    `json:"powerStagePosition" yaml:"powerStagePosition"`
	BasePoints         int                    `json:"basePoints"         yaml:"basePoints"`
	Multiplier         string                 `json:"multiplier"         yaml:"multiplier"`
	Bonus              int                    `json:"bonus"              yaml:"bonus"`
	Points             int                    `json:"points"             yaml:"points"`
}

func NewScoreCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "computes the points of a single result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.class,
		"class",
		"c",
		"top",
		"competition class (top, mid, entry)")
	cmd.Flags().IntVarP(&opts.position,
		"position",
		"p",
		1,
		"finishing position")
	cmd.Flags().StringVarP(&opts.tier,
		"tier",
		"t",
		"regular",
		"event tier (regular, championship)")
	cmd.Flags().IntVar(&opts.stageWins,
		"stage-wins",
		0,
		"number of stage wins")
	cmd.Flags().IntVar(&opts.powerStage,
		"power-stage",
		0,
		"position on the power stage (0 if none)")
	cmd.Flags().StringVarP(&opts.season,
		"season",
		"s",
		"",
		"season file providing custom points tables (optional)")
	cmd.Flags().StringVarP(&opts.output,
		"output",
		"o",
		string(output.Table),
		"output format (table, json, yaml)")
	return cmd
}

func runScore(w io.Writer, opts *options) error {
	format, err := output.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	class, err := model.ParseCompetitionClass(opts.class)
	if err != nil {
		return err
	}
	tier, err := model.ParseEventTier(opts.tier)
	if err != nil {
		return err
	}
	rules := scoring.DefaultRules()
	if opts.season != "" {
		data, err := season.Load(opts.season)
		if err != nil {
			return err
		}
		if rules, err = data.Rules(); err != nil {
			return err
		}
	}
	points, err := rules.Score(class, opts.position, tier, opts.stageWins, opts.powerStage)
	if err != nil {
		return err
	}
	bonus, err := scoring.Bonus(opts.stageWins, opts.powerStage)
	if err != nil {
		return err
	}
	res := &Result{
		Class:              class,
		Tier:               tier,
		Position:           opts.position,
		StageWins:          opts.stageWins,
		PowerStagePosition: opts.powerStage,
		BasePoints:         rules.BasePoints(class, opts.position),
		Multiplier:         scoring.Multiplier(tier).String(),
		Bonus:              bonus,
		Points:             points,
	}
	log.Debug("score computed", log.Any("result", res))
	return output.Write(w, format, res, res.table)
}

func (r *Result) table(w io.Writer) error {
	output.Row(w, "base points", fmt.Sprintf("%d (%s P%d)", r.BasePoints, r.Class, r.Position))
	output.Row(w, "multiplier", fmt.Sprintf("x%s (%s)", r.Multiplier, r.Tier))
	output.Row(w, "bonus", r.Bonus)
	output.Row(w, "points", r.Points)
	return nil
}
