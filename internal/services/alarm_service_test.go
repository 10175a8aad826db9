package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"alarmbot/internal/models"
	"alarmbot/internal/structures"
	"alarmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service   *AlarmService
	store     *models.AlarmStore
	sessions  *models.SessionStore
	persister *testutil.MockPersister
	feed      *testutil.MockFeed
}

func newServiceFixture(maxPerOwner int) *serviceFixture {
	conf := &structures.Config{Alarm: structures.AlarmConfig{MaxPerOwner: maxPerOwner}}
	f := &serviceFixture{
		persister: &testutil.MockPersister{},
		feed: testutil.NewMockFeed(map[string]float64{
			"ETHUSDT": 3100,
			"BTCUSDT": 65000,
		}),
	}
	f.store = NewAlarmStore(conf, f.persister)
	f.sessions = NewSessionStore(conf)
	resolver := &testutil.MockResolver{Symbols: map[string]string{
		"eth":     "ETHUSDT",
		"btc":     "BTCUSDT",
		"btcusdt": "BTCUSDT",
		"doge":    "DOGEUSDT",
	}}
	f.service = NewAlarmService(conf, f.store, f.sessions, resolver, f.feed, &testutil.MockLogger{}).(*AlarmService)
	return f
}

func TestCreateAlarmInline_Success(t *testing.T) {
	f := newServiceFixture(5)

	res, err := f.service.CreateAlarmInline(context.Background(), 1, "eth", "3,000")
	require.NoError(t, err)

	assert.Equal(t, models.Alarm{Symbol: "ETHUSDT", Target: 3000, Direction: models.DirectionDown}, res.Alarm)
	assert.True(t, res.HasCurrent)
	assert.Equal(t, 3100.0, res.Current)
	assert.Equal(t, []models.Alarm{res.Alarm}, f.service.ListAlarms(1))
	assert.Equal(t, 1, f.persister.SaveCount())
}

func TestCreateAlarmInline_UpWhenAboveCurrent(t *testing.T) {
	f := newServiceFixture(5)

	res, err := f.service.CreateAlarmInline(context.Background(), 1, "btc", "$70000")
	require.NoError(t, err)
	assert.Equal(t, models.DirectionUp, res.Alarm.Direction)
}

func TestCreateAlarmInline_UnknownPriceDefaultsUp(t *testing.T) {
	f := newServiceFixture(5)

	res, err := f.service.CreateAlarmInline(context.Background(), 1, "doge", "0.1")
	require.NoError(t, err)
	assert.Equal(t, models.DirectionUp, res.Alarm.Direction)
	assert.False(t, res.HasCurrent)
}

func TestCreateAlarmInline_Errors(t *testing.T) {
	f := newServiceFixture(1)
	ctx := context.Background()

	_, err := f.service.CreateAlarmInline(ctx, 1, "nope", "100")
	assert.ErrorIs(t, err, ErrSymbolNotFound)

	_, err = f.service.CreateAlarmInline(ctx, 1, "eth", "abc")
	assert.ErrorIs(t, err, ErrBadPrice)

	_, err = f.service.CreateAlarmInline(ctx, 1, "eth", "-5")
	assert.ErrorIs(t, err, ErrBadPrice)

	_, err = f.service.CreateAlarmInline(ctx, 1, "eth", "3000")
	require.NoError(t, err)

	_, err = f.service.CreateAlarmInline(ctx, 1, "btc", "70000")
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Len(t, f.service.ListAlarms(1), 1)
}

func TestWizard_HappyPath(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()

	prompt, err := f.service.BeginWizard(ctx, 1, "ETH")
	require.NoError(t, err)
	assert.Equal(t, &Prompt{Symbol: "ETHUSDT", Current: 3100, HasCurrent: true}, prompt)
	assert.True(t, f.service.HasActiveWizard(1))

	res, err := f.service.SubmitWizardPrice(ctx, 1, 1, "3500")
	require.NoError(t, err)
	assert.Equal(t, models.Alarm{Symbol: "ETHUSDT", Target: 3500, Direction: models.DirectionUp}, res.Alarm)
	assert.False(t, f.service.HasActiveWizard(1))
}

func TestWizard_UnknownSymbolCreatesNoSession(t *testing.T) {
	f := newServiceFixture(5)

	_, err := f.service.BeginWizard(context.Background(), 1, "nope")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
	assert.False(t, f.service.HasActiveWizard(1))
}

func TestWizard_BadPriceKeepsSession(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()
	_, err := f.service.BeginWizard(ctx, 1, "eth")
	require.NoError(t, err)

	for _, text := range []string{"abc", "0", "-100", "", "$", "1e400", "1e-400"} {
		_, err = f.service.SubmitWizardPrice(ctx, 1, 1, text)
		assert.ErrorIs(t, err, ErrBadPrice, text)
		assert.True(t, f.service.HasActiveWizard(1), text)
	}
	assert.Empty(t, f.service.ListAlarms(1))

	_, err = f.service.SubmitWizardPrice(ctx, 1, 1, "2900")
	assert.NoError(t, err)
}

func TestWizard_SessionsFollowTheUser(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()
	const group, alice, bob = int64(-100500), int64(11), int64(22)

	_, err := f.service.BeginWizard(ctx, alice, "eth")
	require.NoError(t, err)
	assert.True(t, f.service.HasActiveWizard(alice))
	assert.False(t, f.service.HasActiveWizard(bob))
	assert.False(t, f.service.CancelWizard(bob))

	_, err = f.service.SubmitWizardPrice(ctx, group, bob, "3500")
	assert.ErrorIs(t, err, ErrNoActiveWizard)
	assert.True(t, f.service.HasActiveWizard(alice))

	res, err := f.service.SubmitWizardPrice(ctx, group, alice, "3500")
	require.NoError(t, err)
	assert.Equal(t, "ETHUSDT", res.Alarm.Symbol)
	assert.Len(t, f.service.ListAlarms(group), 1)
	assert.Empty(t, f.service.ListAlarms(alice))
}

func TestWizard_ConcurrentSubmitsCreateOneAlarm(t *testing.T) {
	f := newServiceFixture(10)
	ctx := context.Background()
	_, err := f.service.BeginWizard(ctx, 1, "eth")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.SubmitWizardPrice(ctx, 1, 1, "3500"); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, f.service.ListAlarms(1), 1)
	assert.False(t, f.service.HasActiveWizard(1))
}

func TestWizard_LimitExceededClearsSession(t *testing.T) {
	f := newServiceFixture(1)
	ctx := context.Background()
	_, err := f.service.CreateAlarmInline(ctx, 1, "btc", "70000")
	require.NoError(t, err)

	_, err = f.service.BeginWizard(ctx, 1, "eth")
	require.NoError(t, err)
	_, err = f.service.SubmitWizardPrice(ctx, 1, 1, "3500")

	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.False(t, f.service.HasActiveWizard(1))
	assert.Len(t, f.service.ListAlarms(1), 1)
}

func TestWizard_NoActiveWizard(t *testing.T) {
	f := newServiceFixture(5)
	_, err := f.service.SubmitWizardPrice(context.Background(), 1, 1, "100")
	assert.ErrorIs(t, err, ErrNoActiveWizard)
}

func TestWizard_Cancel(t *testing.T) {
	f := newServiceFixture(5)
	_, err := f.service.BeginWizard(context.Background(), 1, "eth")
	require.NoError(t, err)
	saves := f.persister.SaveCount()

	assert.True(t, f.service.CancelWizard(1))
	assert.False(t, f.service.HasActiveWizard(1))
	assert.False(t, f.service.CancelWizard(1))
	assert.Equal(t, saves, f.persister.SaveCount())

	_, err = f.service.SubmitWizardPrice(context.Background(), 1, 1, "100")
	assert.ErrorIs(t, err, ErrNoActiveWizard)
}

func TestWizard_FallsBackToEntrySnapshot(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()
	_, err := f.service.BeginWizard(ctx, 1, "eth")
	require.NoError(t, err)

	f.feed.Unset("ETHUSDT")
	res, err := f.service.SubmitWizardPrice(ctx, 1, 1, "3000")
	require.NoError(t, err)
	assert.Equal(t, models.DirectionDown, res.Alarm.Direction)
	assert.Equal(t, 3100.0, res.Current)
}

func TestWizard_UsesFreshPrice(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()
	_, err := f.service.BeginWizard(ctx, 1, "eth")
	require.NoError(t, err)

	f.feed.Set("ETHUSDT", 2800)
	res, err := f.service.SubmitWizardPrice(ctx, 1, 1, "3000")
	require.NoError(t, err)
	assert.Equal(t, models.DirectionUp, res.Alarm.Direction)
}

func TestWizardAndInlineProduceIdenticalRecords(t *testing.T) {
	inputs := []string{"3000", "3,000", "$3000", "3100", "4000.25", "0.5"}
	for _, price := range inputs {
		inline := newServiceFixture(5)
		wizard := newServiceFixture(5)
		ctx := context.Background()

		_, err := inline.service.CreateAlarmInline(ctx, 1, "eth", price)
		require.NoError(t, err, price)

		_, err = wizard.service.BeginWizard(ctx, 1, "eth")
		require.NoError(t, err, price)
		_, err = wizard.service.SubmitWizardPrice(ctx, 1, 1, price)
		require.NoError(t, err, price)

		assert.Equal(t, inline.service.ListAlarms(1), wizard.service.ListAlarms(1), price)
		assert.Equal(t, inline.persister.Saved, wizard.persister.Saved, price)
	}
}

func TestClearAlarms(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()
	_, _ = f.service.CreateAlarmInline(ctx, 1, "eth", "3000")
	_, _ = f.service.CreateAlarmInline(ctx, 1, "btc", "70000")

	assert.Equal(t, 2, f.service.ClearAlarms(1))
	assert.Equal(t, 0, f.service.ClearAlarms(1))
	assert.Empty(t, f.service.ListAlarms(1))
}

func TestConcurrentInlineCreationRespectsCap(t *testing.T) {
	f := newServiceFixture(3)
	var wg sync.WaitGroup
	var mu sync.Mutex
	limited := 0

	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateAlarmInline(context.Background(), 1, "btc", "70000")
			if errors.Is(err, ErrLimitExceeded) {
				mu.Lock()
				limited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, f.service.ListAlarms(1), 3)
	assert.Equal(t, 9, limited)
}

func TestParsePrice(t *testing.T) {
	valid := map[string]float64{
		"117150":     117150,
		"117,150":    117150,
		"$117,150.5": 117150.5,
		" 0.00012 ":  0.00012,
		"1 000":      1000,
	}
	for in, want := range valid {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "0", "-1", "1.2.3", "$", "1e400", "1e-400"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrBadPrice, in)
	}
}

func TestCreateAlarmInline_OutOfRangePriceKeepsStoreWritable(t *testing.T) {
	f := newServiceFixture(5)
	ctx := context.Background()

	_, err := f.service.CreateAlarmInline(ctx, 1, "btc", "1e400")
	assert.ErrorIs(t, err, ErrBadPrice)
	_, err = f.service.CreateAlarmInline(ctx, 1, "btc", "1e-400")
	assert.ErrorIs(t, err, ErrBadPrice)
	assert.Empty(t, f.service.ListAlarms(1))

	_, err = f.service.CreateAlarmInline(ctx, 2, "eth", "3000")
	require.NoError(t, err)
	assert.NoError(t, f.store.Persist())
	assert.Len(t, f.persister.Saved[2], 1)
}

func TestIsCommandText(t *testing.T) {
	assert.True(t, IsCommandText("/alarmcancel"))
	assert.True(t, IsCommandText("  /alarmlist"))
	assert.False(t, IsCommandText("3000"))
	assert.False(t, IsCommandText(""))
}
