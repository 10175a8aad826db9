package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/models"
	"alarmbot/internal/providers"
	"alarmbot/internal/structures"

	"github.com/shopspring/decimal"
)

var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrBadPrice       = errors.New("bad price")
	ErrLimitExceeded  = models.ErrLimitExceeded
	ErrNoActiveWizard = errors.New("no active alarm wizard")
)

type Creation struct {
	Alarm      models.Alarm
	Current    float64
	HasCurrent bool
}

type Prompt struct {
	Symbol     string
	Current    float64
	HasCurrent bool
}

type AlarmServiceInterface interface {
	CreateAlarmInline(ctx context.Context, owner int64, symbolInput, priceText string) (*Creation, error)
	BeginWizard(ctx context.Context, user int64, symbolInput string) (*Prompt, error)
	SubmitWizardPrice(ctx context.Context, owner, user int64, text string) (*Creation, error)
	CancelWizard(user int64) bool
	HasActiveWizard(user int64) bool
	ListAlarms(owner int64) []models.Alarm
	ClearAlarms(owner int64) int
	MaxPerOwner() int
}

type AlarmService struct {
	store       *models.AlarmStore
	sessions    *models.SessionStore
	resolver    interfaces.SymbolResolver
	feed        interfaces.PriceFeed
	logger      providers.Logger
	maxPerOwner int
}

func NewAlarmService(conf *structures.Config, store *models.AlarmStore, sessions *models.SessionStore, resolver interfaces.SymbolResolver, feed interfaces.PriceFeed, logger providers.Logger) AlarmServiceInterface {
	return &AlarmService{
		store:       store,
		sessions:    sessions,
		resolver:    resolver,
		feed:        feed,
		logger:      logger,
		maxPerOwner: conf.Alarm.MaxPerOwner,
	}
}

func (s *AlarmService) CreateAlarmInline(ctx context.Context, owner int64, symbolInput, priceText string) (*Creation, error) {
	symbol, ok := s.resolver.Resolve(ctx, symbolInput)
	if !ok {
		return nil, ErrSymbolNotFound
	}
	target, err := ParsePrice(priceText)
	if err != nil {
		return nil, err
	}

	current, known := s.feed.CurrentPrice(ctx, symbol)
	return s.add(owner, symbol, target, current, known)
}

// BeginWizard opens a wizard for the user who sent the command. Alarms are
// owned by chats while wizards follow users, so group members never share one.
func (s *AlarmService) BeginWizard(ctx context.Context, user int64, symbolInput string) (*Prompt, error) {
	symbol, ok := s.resolver.Resolve(ctx, symbolInput)
	if !ok {
		return nil, ErrSymbolNotFound
	}

	current, known := s.feed.CurrentPrice(ctx, symbol)
	s.sessions.Begin(user, symbol, current, known)

	return &Prompt{Symbol: symbol, Current: current, HasCurrent: known}, nil
}

// SubmitWizardPrice completes the user's pending wizard with an alarm for the
// owner chat. A bad price keeps the wizard open; any other outcome closes it,
// including a full alarm list.
func (s *AlarmService) SubmitWizardPrice(ctx context.Context, owner, user int64, text string) (*Creation, error) {
	if _, ok := s.sessions.Get(user); !ok {
		return nil, ErrNoActiveWizard
	}
	target, err := ParsePrice(text)
	if err != nil {
		return nil, err
	}

	// a concurrent submit may have consumed the wizard since Get
	session, ok := s.sessions.Take(user)
	if !ok {
		return nil, ErrNoActiveWizard
	}

	current, known := s.feed.CurrentPrice(ctx, session.Symbol)
	if !known {
		current, known = session.Current, session.HasCurrent
	}

	return s.add(owner, session.Symbol, target, current, known)
}

func (s *AlarmService) add(owner int64, symbol string, target, current float64, known bool) (*Creation, error) {
	direction := models.InferDirection(target, current, known)
	alarm, err := s.store.Add(owner, symbol, target, direction)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf(providers.TypeBot, "Owner %d set %s alarm on %s at %v", owner, direction, symbol, target)
	return &Creation{Alarm: alarm, Current: current, HasCurrent: known}, nil
}

func (s *AlarmService) CancelWizard(user int64) bool {
	return s.sessions.Delete(user)
}

func (s *AlarmService) HasActiveWizard(user int64) bool {
	_, ok := s.sessions.Get(user)
	return ok
}

func (s *AlarmService) ListAlarms(owner int64) []models.Alarm {
	return s.store.List(owner)
}

func (s *AlarmService) ClearAlarms(owner int64) int {
	return s.store.Clear(owner)
}

func (s *AlarmService) MaxPerOwner() int {
	return s.maxPerOwner
}

var priceDecoration = strings.NewReplacer("$", "", ",", "", " ", "", "\t", "")

// ParsePrice reads a positive price, ignoring currency signs, thousands
// separators and whitespace. The result must stay a finite, positive float64.
func ParsePrice(text string) (float64, error) {
	cleaned := priceDecoration.Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return 0, ErrBadPrice
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil || !price.IsPositive() {
		return 0, ErrBadPrice
	}
	value := price.InexactFloat64()
	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrBadPrice
	}
	return value, nil
}

// IsCommandText reports whether text is a bot command rather than wizard input.
func IsCommandText(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}
