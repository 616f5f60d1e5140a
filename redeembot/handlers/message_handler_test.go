package handlers

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

type stubAccounts struct {
	ids []string
	err error
}

func (s stubAccounts) List(context.Context) ([]string, error) { return s.ids, s.err }

type stubRunner struct {
	mu        sync.Mutex
	calls     []redeemer.Operation
	succeeded []string
	err       error
	block     chan struct{}
}

func (s *stubRunner) RunBatch(_ context.Context, ids []string, op redeemer.Operation) ([]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	if len(ids) == 0 {
		return []string{}, redeemer.ErrNoAccounts
	}
	return s.succeeded, s.err
}

type recordingPoster struct {
	mu    sync.Mutex
	posts []string
}

func (p *recordingPoster) post(_ snowflake.ID, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posts = append(p.posts, content)
	return nil
}

const announcement = "🎁 Gift Code #ABC123 is live!"

func TestAutoRedeemer_Handle(t *testing.T) {
	const watched = snowflake.ID(10)

	tests := []struct {
		name      string
		channel   snowflake.ID
		content   string
		accounts  stubAccounts
		succeeded []string
		batchErr  error
		wantRan   bool
		wantPost  []string
	}{
		{
			name:      "redeems for roster",
			channel:   watched,
			content:   announcement,
			accounts:  stubAccounts{ids: []string{"1", "2"}},
			succeeded: []string{"2"},
			wantRan:   true,
			wantPost:  []string{"✅ Auto-redeemed code `ABC123` for: `2`"},
		},
		{
			name:      "stopped early",
			channel:   watched,
			content:   announcement,
			accounts:  stubAccounts{ids: []string{"1", "2", "3"}},
			succeeded: []string{"1"},
			batchErr:  &redeemer.InterruptedError{Attempted: 1, Total: 3, Err: context.Canceled},
			wantRan:   true,
			wantPost:  []string{"✅ Auto-redeemed code `ABC123` for: `1`\n⚠️ Stopped early: 2 account(s) were not attempted"},
		},
		{
			name:     "nobody succeeded",
			channel:  watched,
			content:  announcement,
			accounts: stubAccounts{ids: []string{"1"}},
			wantRan:  true,
			wantPost: []string{"❌ Failed to redeem code `ABC123` for any users"},
		},
		{
			name:     "empty roster",
			channel:  watched,
			content:  announcement,
			wantRan:  true,
			wantPost: []string{"❌ Failed to redeem code `ABC123` for any configured users"},
		},
		{
			name:     "roster error",
			channel:  watched,
			content:  announcement,
			accounts: stubAccounts{err: errors.New("db down")},
			wantRan:  true,
			wantPost: []string{"❌ Error auto-redeeming code `ABC123`: db down"},
		},
		{
			name:    "other channel ignored",
			channel: 11,
			content: announcement,
		},
		{
			name:    "no code",
			channel: watched,
			content: "hello there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{succeeded: tt.succeeded, err: tt.batchErr}
			poster := &recordingPoster{}
			a := NewAutoRedeemer(watched, tt.accounts, runner, poster.post, time.Second, utils.NewBackgroundTasks())

			code, ok := a.Detect(tt.channel, tt.content)
			if ok != tt.wantRan {
				t.Fatalf("Detect() ok = %v, want %v", ok, tt.wantRan)
			}
			if ok {
				a.Run(context.Background(), tt.channel, code)
			}
			if !reflect.DeepEqual(poster.posts, tt.wantPost) {
				t.Errorf("posts = %q, want %q", poster.posts, tt.wantPost)
			}
			if tt.wantRan && tt.accounts.err == nil && !reflect.DeepEqual(runner.calls, []redeemer.Operation{redeemer.Redeem("ABC123")}) {
				t.Errorf("runner calls = %+v", runner.calls)
			}
		})
	}
}

func TestAutoRedeemer_AnyChannelWhenUnset(t *testing.T) {
	a := NewAutoRedeemer(0, stubAccounts{}, &stubRunner{}, (&recordingPoster{}).post, time.Second, utils.NewBackgroundTasks())
	if code, ok := a.Detect(12345, announcement); !ok || code != "ABC123" {
		t.Errorf("Detect() = %q, %v", code, ok)
	}
}

func TestAutoRedeemer_SkipsCodeInFlight(t *testing.T) {
	runner := &stubRunner{block: make(chan struct{}), succeeded: []string{"1"}}
	poster := &recordingPoster{}
	tasks := utils.NewBackgroundTasks()
	a := NewAutoRedeemer(0, stubAccounts{ids: []string{"1"}}, runner, poster.post, time.Second, tasks)

	if !a.Dispatch(1, "ABC123") {
		t.Fatal("first Dispatch() should start a batch")
	}
	if a.Dispatch(1, "ABC123") {
		t.Error("second Dispatch() for the same code should be skipped")
	}
	if !a.Dispatch(1, "XYZ789") {
		t.Error("a different code should run alongside")
	}

	close(runner.block)
	waitIdle(t, tasks)

	if !a.Dispatch(1, "ABC123") {
		t.Error("code should be redeemable again once the first batch is done")
	}
	if err := tasks.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	poster.mu.Lock()
	defer poster.mu.Unlock()
	if len(poster.posts) != 3 {
		t.Errorf("posts = %q, want 3", poster.posts)
	}
}

func TestAutoRedeemer_ShutdownStopsDispatch(t *testing.T) {
	tasks := utils.NewBackgroundTasks()
	a := NewAutoRedeemer(0, stubAccounts{ids: []string{"1"}}, &stubRunner{}, (&recordingPoster{}).post, time.Second, tasks)
	if err := tasks.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if a.Dispatch(1, "ABC123") {
		t.Error("Dispatch() after shutdown should be refused")
	}
}

func waitIdle(t *testing.T, tasks *utils.BackgroundTasks) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tasks.Running() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("background tasks did not finish")
		}
		time.Sleep(time.Millisecond)
	}
}

// selfClient answers ID() only; the listener needs nothing else.
type selfClient struct {
	bot.Client
	id snowflake.ID
}

func (c selfClient) ID() snowflake.ID { return c.id }

func messageCreate(client bot.Client, channelID snowflake.ID, author discord.User, content string) *events.MessageCreate {
	return &events.MessageCreate{
		GenericMessage: &events.GenericMessage{
			GenericEvent: events.NewGenericEvent(client, 0, 0),
			ChannelID:    channelID,
			Message:      discord.Message{ChannelID: channelID, Author: author, Content: content},
		},
	}
}

func TestAutoRedeemer_Listener(t *testing.T) {
	const self = snowflake.ID(900)

	tests := []struct {
		name    string
		author  discord.User
		content string
		wantRun bool
	}{
		{name: "member post", author: discord.User{ID: 1}, content: announcement, wantRun: true},
		{name: "crossposted by another bot", author: discord.User{ID: 2, Bot: true}, content: announcement, wantRun: true},
		{name: "own message", author: discord.User{ID: self, Bot: true}, content: announcement},
		{name: "no code", author: discord.User{ID: 1}, content: "good morning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{succeeded: []string{"1"}}
			poster := &recordingPoster{}
			tasks := utils.NewBackgroundTasks()
			a := NewAutoRedeemer(0, stubAccounts{ids: []string{"1"}}, runner, poster.post, time.Second, tasks)

			a.Listener().OnEvent(messageCreate(selfClient{id: self}, 77, tt.author, tt.content))
			waitIdle(t, tasks)
			if err := tasks.Shutdown(time.Second); err != nil {
				t.Fatalf("Shutdown() error = %v", err)
			}

			runner.mu.Lock()
			defer runner.mu.Unlock()
			ran := len(runner.calls) == 1
			if ran != tt.wantRun {
				t.Fatalf("batch ran = %v, want %v (calls %+v)", ran, tt.wantRun, runner.calls)
			}
			if ran && runner.calls[0] != redeemer.Redeem("ABC123") {
				t.Errorf("runner call = %+v", runner.calls[0])
			}
		})
	}
}
