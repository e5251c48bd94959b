// Package replay drives the engine through a scripted scenario on a mock clock.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database"
	"github.com/robalyx/headline/internal/database/service"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"go.uber.org/zap"
)

var (
	// ErrUnknownKey is returned when a step names a user or story the scenario never created.
	ErrUnknownKey = errors.New("unknown scenario key")
	// ErrUnknownAction is returned for a step whose action is not supported.
	ErrUnknownAction = errors.New("unknown scenario action")
	// ErrExpectationFailed is returned when a step's outcome differs from its expectation.
	ErrExpectationFailed = errors.New("scenario expectation failed")
)

// Action names a scenario step.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionComment  Action = "comment"
	ActionPromote  Action = "promote"
	ActionDemote   Action = "demote"
	ActionFlag     Action = "flag"
	ActionMarkSpam Action = "mark-spam"
	ActionApprove  Action = "approve"
	ActionPublish  Action = "publish"
	ActionDelete   Action = "delete"
	ActionLock     Action = "lock"
	ActionUnlock   Action = "unlock"
	ActionInterest Action = "interest"
)

// ExpectOK marks a step that must succeed.
const ExpectOK = "ok"

// Scenario is a scripted sequence of moderation actions.
type Scenario struct {
	Start time.Time `json:"start"`
	Users []Account `json:"users"`
	Steps []Step    `json:"steps"`
}

// Account is a user registered before the steps run.
type Account struct {
	Key      string `json:"key"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // Empty registers an external identity
	Role     string `json:"role,omitempty"`
}

// Step is one action taken by a scenario user.
type Step struct {
	Advance    string            `json:"advance,omitempty"` // Clock advance before the action, e.g. "90m"
	Action     Action            `json:"action"`
	User       string            `json:"user"`
	Story      string            `json:"story,omitempty"`  // Story key; submit assigns it
	Target     string            `json:"target,omitempty"` // User key for lock and unlock
	Submission *types.Submission `json:"submission,omitempty"`
	Text       string            `json:"text,omitempty"` // Comment body or interest tag
	Expect     string            `json:"expect,omitempty"`
}

// Outcome is the result of one step.
type Outcome struct {
	Index  int
	Action Action
	At     time.Time
	Detail string
	Err    error
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var scenario Scenario
	if err := sonic.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return &scenario, nil
}

// Runner replays scenarios against one engine.
type Runner struct {
	client  database.Client
	clock   *clock.Mock
	users   map[string]*types.User
	stories map[string]string
	logger  *zap.Logger
}

// NewRunner creates a runner. The client must have been built with clk.
func NewRunner(client database.Client, clk *clock.Mock, logger *zap.Logger) *Runner {
	return &Runner{
		client:  client,
		clock:   clk,
		users:   make(map[string]*types.User),
		stories: make(map[string]string),
		logger:  logger.Named("replay"),
	}
}

// Run registers the scenario's users and executes its steps in order.
// Action failures are reported in the outcomes; only setup errors and failed expectations stop the run.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]*Outcome, error) {
	if !scenario.Start.IsZero() {
		r.clock.Set(scenario.Start)
	}

	for _, account := range scenario.Users {
		if err := r.register(ctx, account); err != nil {
			return nil, err
		}
	}

	outcomes := make([]*Outcome, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		if step.Advance != "" {
			d, err := time.ParseDuration(step.Advance)
			if err != nil {
				return outcomes, fmt.Errorf("step %d: invalid advance %q: %w", i, step.Advance, err)
			}
			r.clock.Advance(d)
		}

		detail, err := r.execute(ctx, step)
		if errors.Is(err, ErrUnknownKey) || errors.Is(err, ErrUnknownAction) {
			return outcomes, fmt.Errorf("step %d: %w", i, err)
		}

		outcome := &Outcome{Index: i, Action: step.Action, At: r.clock.Now(), Detail: detail, Err: err}
		outcomes = append(outcomes, outcome)

		r.logger.Debug("Replayed step",
			zap.Int("index", i),
			zap.String("action", string(step.Action)),
			zap.String("detail", detail),
			zap.Error(err))

		if err := checkExpectation(step.Expect, outcome.Err); err != nil {
			return outcomes, fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}

	return outcomes, nil
}

// User returns the account registered under key.
func (r *Runner) User(key string) (*types.User, bool) {
	user, ok := r.users[key]
	return user, ok
}

// StoryID returns the story ID submitted under key.
func (r *Runner) StoryID(key string) (string, bool) {
	id, ok := r.stories[key]
	return id, ok
}

func (r *Runner) register(ctx context.Context, account Account) error {
	var opts []service.RegisterOption
	if account.Role != "" {
		role, err := enum.UserRoleString(account.Role)
		if err != nil {
			return fmt.Errorf("user %q: %w", account.Key, err)
		}
		opts = append(opts, service.WithRole(role))
	}

	users := r.client.Service().User()

	var (
		user *types.User
		err  error
	)
	if account.Password == "" {
		user, err = users.RegisterExternal(ctx, account.Email, opts...)
	} else {
		user, err = users.Register(ctx, account.Email, account.Password, opts...)
	}
	if err != nil {
		return fmt.Errorf("failed to register user %q: %w", account.Key, err)
	}

	r.users[account.Key] = user
	return nil
}

func (r *Runner) execute(ctx context.Context, step Step) (string, error) {
	user, ok := r.users[step.User]
	if !ok {
		return "", fmt.Errorf("%w: user %q", ErrUnknownKey, step.User)
	}

	svc := r.client.Service()
	moderation := svc.Moderation()

	switch step.Action {
	case ActionSubmit:
		if step.Submission == nil {
			return "", types.ErrInvalidSubmission
		}
		story, err := svc.Story().Submit(ctx, user, *step.Submission)
		if err != nil {
			return "", err
		}
		if step.Story != "" {
			r.stories[step.Story] = story.ID
		}
		return "id=" + story.ID, nil

	case ActionInterest:
		return "", svc.User().AddInterest(ctx, user.ID, step.Text)

	case ActionLock, ActionUnlock:
		target, ok := r.users[step.Target]
		if !ok {
			return "", fmt.Errorf("%w: user %q", ErrUnknownKey, step.Target)
		}
		if step.Action == ActionLock {
			return "", svc.User().Lock(ctx, user, target.ID)
		}
		return "", svc.User().Unlock(ctx, user, target.ID)

	case ActionPublish:
		published, err := moderation.Publish(ctx, user)
		return fmt.Sprintf("published=%d", published), err

	case ActionComment, ActionPromote, ActionDemote, ActionFlag, ActionMarkSpam, ActionApprove, ActionDelete:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, step.Action)
	}

	storyID, ok := r.stories[step.Story]
	if !ok {
		return "", fmt.Errorf("%w: story %q", ErrUnknownKey, step.Story)
	}

	switch step.Action {
	case ActionComment:
		comment, err := svc.Story().Comment(ctx, storyID, user, step.Text)
		if err != nil {
			return "", err
		}
		return "id=" + comment.ID, nil
	case ActionPromote:
		count, err := moderation.Promote(ctx, storyID, user)
		return fmt.Sprintf("votes=%d", count), err
	case ActionDemote:
		count, err := moderation.Demote(ctx, storyID, user)
		return fmt.Sprintf("votes=%d", count), err
	case ActionFlag:
		suspended, err := moderation.FlagSpam(ctx, storyID, user)
		return fmt.Sprintf("suspended=%t", suspended), err
	case ActionMarkSpam:
		return "", moderation.MarkSpam(ctx, storyID, user)
	case ActionApprove:
		return "", moderation.Approve(ctx, storyID, user)
	default:
		return "", moderation.Delete(ctx, storyID, user)
	}
}

// checkExpectation compares an outcome with the step's expectation.
// An empty expectation accepts anything; otherwise the error text must contain it.
func checkExpectation(expect string, err error) error {
	switch {
	case expect == "":
		return nil
	case expect == ExpectOK:
		if err != nil {
			return fmt.Errorf("%w: want success, got %w", ErrExpectationFailed, err)
		}
		return nil
	case err == nil:
		return fmt.Errorf("%w: want %q, got success", ErrExpectationFailed, expect)
	case !strings.Contains(err.Error(), expect):
		return fmt.Errorf("%w: want %q, got %w", ErrExpectationFailed, expect, err)
	default:
		return nil
	}
}
