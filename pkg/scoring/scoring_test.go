//nolint:funlen,lll // ok for tests
package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/rally-championship/pkg/model"
)

func TestBasePoints_outOfRange(t *testing.T) {
	for _, c := range model.Classes {
		for _, pos := range []int{-5, -1, 0, 11, 12, 100} {
			assert.Zero(t, BasePoints(c, pos), "class %s pos %d", c, pos)
		}
	}
}

func TestBasePoints_tables(t *testing.T) {
	assert.Equal(t, PointsTable{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}, DefaultRules().Table(model.ClassTop))
	assert.Equal(t, PointsTable{20, 15, 12, 10, 8, 6, 4, 3, 2, 1}, DefaultRules().Table(model.ClassMid))
	assert.Equal(t, PointsTable{15, 12, 10, 8, 6, 5, 4, 3, 2, 1}, DefaultRules().Table(model.ClassEntry))
	assert.Equal(t, 25, BasePoints(model.ClassTop, 1))
	assert.Equal(t, 1, BasePoints(model.ClassEntry, 10))
}

func TestBasePoints_nonIncreasing(t *testing.T) {
	for _, c := range model.Classes {
		for pos := 2; pos <= TableSize; pos++ {
			assert.LessOrEqual(t, BasePoints(c, pos), BasePoints(c, pos-1),
				"class %s pos %d", c, pos)
		}
	}
}

func TestBasePoints_unknownClassPanics(t *testing.T) {
	assert.Panics(t, func() { BasePoints(model.CompetitionClass(0), 1) })
	assert.Panics(t, func() { BasePoints(model.CompetitionClass(42), 1) })
}

func TestMultiplier(t *testing.T) {
	assert.True(t, Multiplier(model.TierChampionship).Equal(decimal.RequireFromString("1.5")))
	assert.True(t, Multiplier(model.TierRegular).Equal(decimal.NewFromInt(1)))
	assert.Panics(t, func() { Multiplier(model.EventTier(0)) })
}

func TestPowerStageBonus(t *testing.T) {
	want := map[int]int{1: 5, 2: 4, 3: 3, 4: 2, 5: 1}
	for pos := -2; pos <= 8; pos++ {
		assert.Equal(t, want[pos], PowerStageBonus(pos), "pos %d", pos)
	}
}

func TestBonus(t *testing.T) {
	tests := []struct {
		name      string
		stageWins int
		psPos     int
		want      int
		wantErr   bool
	}{
		{name: "nothing", want: 0},
		{name: "stage wins only", stageWins: 3, want: 3},
		{name: "power stage winner", stageWins: 2, psPos: 1, want: 7},
		{name: "power stage sixth", stageWins: 1, psPos: 6, want: 1},
		{name: "negative stage wins", stageWins: -1, wantErr: true},
		{name: "negative power stage", psPos: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bonus(tt.stageWins, tt.psPos)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore(t *testing.T) {
	type args struct {
		class     model.CompetitionClass
		position  int
		tier      model.EventTier
		stageWins int
		psPos     int
	}
	tests := []struct {
		name    string
		args    args
		want    int
		wantErr bool
	}{
		{
			name: "championship winner with bonus",
			args: args{model.ClassTop, 1, model.TierChampionship, 2, 1},
			want: 45, // round(25*1.5) + 2 + 5
		},
		{
			name: "out of range position",
			args: args{model.ClassMid, 11, model.TierRegular, 0, 0},
			want: 0,
		},
		{
			name: "half rounds up",
			args: args{model.ClassEntry, 6, model.TierChampionship, 0, 0},
			want: 8, // 5*1.5 = 7.5
		},
		{
			name: "bonus not multiplied",
			args: args{model.ClassMid, 10, model.TierChampionship, 4, 5},
			want: 7, // round(1.5)=2, bonus 4+1
		},
		{
			name: "regular event",
			args: args{model.ClassMid, 2, model.TierRegular, 1, 3},
			want: 19,
		},
		{
			name: "bonus without finishing points",
			args: args{model.ClassTop, 0, model.TierRegular, 2, 2},
			want: 6,
		},
		{
			name:    "negative stage wins",
			args:    args{model.ClassTop, 1, model.TierRegular, -2, 0},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.args.class, tt.args.position, tt.args.tier, tt.args.stageWins, tt.args.psPos)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_neverNegative(t *testing.T) {
	for _, c := range model.Classes {
		for _, tier := range []model.EventTier{model.TierRegular, model.TierChampionship} {
			for pos := -1; pos <= 12; pos++ {
				got, err := Score(c, pos, tier, 0, 0)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got, 0)
			}
		}
	}
}

func TestNewRules(t *testing.T) {
	tests := []struct {
		name    string
		tables  map[model.CompetitionClass][]int
		check   func(t *testing.T, r *Rules)
		wantErr bool
	}{
		{
			name:   "no override keeps defaults",
			tables: nil,
			check: func(t *testing.T, r *Rules) {
				assert.Equal(t, DefaultRules().Table(model.ClassTop), r.Table(model.ClassTop))
			},
		},
		{
			name:   "override one class",
			tables: map[model.CompetitionClass][]int{model.ClassEntry: {10, 8, 6, 5, 4, 3, 2, 1, 0, 0}},
			check: func(t *testing.T, r *Rules) {
				assert.Equal(t, 10, r.BasePoints(model.ClassEntry, 1))
				assert.Equal(t, 0, r.BasePoints(model.ClassEntry, 10))
				assert.Equal(t, 25, r.BasePoints(model.ClassTop, 1))
			},
		},
		{
			name:    "too short",
			tables:  map[model.CompetitionClass][]int{model.ClassTop: {25, 18}},
			wantErr: true,
		},
		{
			name:    "increasing",
			tables:  map[model.CompetitionClass][]int{model.ClassTop: {25, 18, 20, 12, 10, 8, 6, 4, 2, 1}},
			wantErr: true,
		},
		{
			name:    "negative",
			tables:  map[model.CompetitionClass][]int{model.ClassTop: {25, 18, 15, 12, 10, 8, 6, 4, 2, -1}},
			wantErr: true,
		},
		{
			name:    "unknown class",
			tables:  map[model.CompetitionClass][]int{model.CompetitionClass(7): {1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRules(tt.tables)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestRules_Award(t *testing.T) {
	entry := &model.ResultEntry{
		EntrantID: "a", EventID: "e1", Class: model.ClassTop,
		Position: 2, StageWins: 1, PowerStagePosition: 1,
	}
	withPS := &model.Event{ID: "e1", Tier: model.TierRegular, PowerStage: true}
	withoutPS := &model.Event{ID: "e1", Tier: model.TierRegular, PowerStage: false}

	got, err := DefaultRules().Award(entry, withPS)
	require.NoError(t, err)
	assert.Equal(t, model.PointsAward{EntrantID: "a", EventID: "e1", Points: 24}, got)

	got, err = DefaultRules().Award(entry, withoutPS)
	require.NoError(t, err)
	assert.Equal(t, 19, got.Points)

	bad := *entry
	bad.StageWins = -1
	_, err = DefaultRules().Award(&bad, withPS)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
