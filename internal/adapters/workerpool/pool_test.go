package workerpool

import (
	"ESBot/internal/core/domain"
	"ESBot/internal/core/ports"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const failureText = "Something went wrong"

// MockReplySender is a mock for ports.ReplySender
type MockReplySender struct {
	mock.Mock
}

var _ ports.ReplySender = (*MockReplySender)(nil)

func (m *MockReplySender) Send(ctx context.Context, chatID int64, reply domain.Reply) error {
	args := m.Called(ctx, chatID, reply)
	return args.Error(0)
}

// recordingSender remembers every reply per chat.
type recordingSender struct {
	mu      sync.Mutex
	replies map[int64][]domain.Reply
}

func newRecordingSender() *recordingSender {
	return &recordingSender{replies: make(map[int64][]domain.Reply)}
}

func (s *recordingSender) Send(_ context.Context, chatID int64, reply domain.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[chatID] = append(s.replies[chatID], reply)
	return nil
}

func (s *recordingSender) For(chatID int64) []domain.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Reply(nil), s.replies[chatID]...)
}

func newTestPool(sender ports.ReplySender, workers, queue int) *Pool {
	nopLogger := zerolog.Nop()
	return New(Options{Name: "test", Workers: workers, QueueSize: queue, FailureText: failureText}, sender, &nopLogger)
}

func drain(t *testing.T, p *Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestPool_SuccessSendsTaskReply(t *testing.T) {
	sender := newRecordingSender()
	p := newTestPool(sender, 2, 10)

	photo := domain.PhotoReply("randomCat.jpg", []byte("img"), "Here is your cat!")
	require.NoError(t, p.Submit(ports.NewTask(1, "cat", func(context.Context) (domain.Reply, error) {
		return photo, nil
	})))
	drain(t, p)

	assert.Equal(t, []domain.Reply{photo}, sender.For(1))
}

func TestPool_FailureSendsGenericNotice(t *testing.T) {
	sender := newRecordingSender()
	p := newTestPool(sender, 1, 10)

	require.NoError(t, p.Submit(ports.NewTask(2, "cat", func(context.Context) (domain.Reply, error) {
		return domain.Reply{}, &domain.FetchError{URL: "http://cats", StatusCode: 500, Err: errors.New("unexpected status")}
	})))
	require.NoError(t, p.Submit(ports.NewTask(3, "roster_get", func(context.Context) (domain.Reply, error) {
		return domain.Reply{}, &domain.StorageError{Op: "read", Path: "x", Err: errors.New("io")}
	})))
	drain(t, p)

	assert.Equal(t, []domain.Reply{domain.TextReply(failureText)}, sender.For(2))
	assert.Equal(t, []domain.Reply{domain.TextReply(failureText)}, sender.For(3))
}

func TestPool_PanicIsTreatedAsFailure(t *testing.T) {
	sender := newRecordingSender()
	p := newTestPool(sender, 1, 10)

	require.NoError(t, p.Submit(ports.NewTask(4, "cat", func(context.Context) (domain.Reply, error) {
		panic("nil image")
	})))
	require.NoError(t, p.Submit(ports.NewTask(4, "cat", func(context.Context) (domain.Reply, error) {
		return domain.TextReply("still alive"), nil
	})))
	drain(t, p)

	assert.Equal(t, []domain.Reply{domain.TextReply(failureText), domain.TextReply("still alive")}, sender.For(4))
}

func TestPool_UndeliveredReplyCascadesOnceThenGivesUp(t *testing.T) {
	sender := new(MockReplySender)
	p := newTestPool(sender, 1, 10)

	photo := domain.PhotoReply("dutyRoster.jpg", []byte("img"), "roster")
	sender.On("Send", mock.Anything, int64(5), photo).Return(errors.New("telegram down")).Once()
	sender.On("Send", mock.Anything, int64(5), domain.TextReply(failureText)).Return(errors.New("still down")).Once()
	sender.On("Send", mock.Anything, int64(6), domain.TextReply("next")).Return(nil).Once()

	require.NoError(t, p.Submit(ports.NewTask(5, "roster_get", func(context.Context) (domain.Reply, error) {
		return photo, nil
	})))
	require.NoError(t, p.Submit(ports.NewTask(6, "roster_get", func(context.Context) (domain.Reply, error) {
		return domain.TextReply("next"), nil
	})))
	drain(t, p)

	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "Send", 3)
}

func TestPool_SubmitNeverBlocksWhenQueueIsFull(t *testing.T) {
	sender := newRecordingSender()
	p := newTestPool(sender, 1, 1)

	started := make(chan struct{})
	release := make(chan struct{})
	blocking := func(context.Context) (domain.Reply, error) {
		close(started)
		<-release
		return domain.TextReply("first"), nil
	}
	quick := func(context.Context) (domain.Reply, error) {
		return domain.TextReply("second"), nil
	}

	require.NoError(t, p.Submit(ports.NewTask(7, "cat", blocking)))
	<-started // the only worker is busy now
	require.NoError(t, p.Submit(ports.NewTask(7, "cat", quick)))

	done := make(chan error, 1)
	go func() { done <- p.Submit(ports.NewTask(7, "cat", quick)) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(release)
	drain(t, p)
	assert.Equal(t, []domain.Reply{domain.TextReply("first"), domain.TextReply("second")}, sender.For(7))
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := newTestPool(newRecordingSender(), 1, 1)
	drain(t, p)

	err := p.Submit(ports.NewTask(8, "cat", func(context.Context) (domain.Reply, error) {
		return domain.TextReply("late"), nil
	}))
	assert.ErrorIs(t, err, ErrPoolClosed)

	// Shutdown is idempotent.
	drain(t, p)
}

func TestPool_ShutdownTimesOutOnStuckTask(t *testing.T) {
	p := newTestPool(newRecordingSender(), 1, 1)
	release := make(chan struct{})
	defer close(release)

	started := make(chan struct{})
	require.NoError(t, p.Submit(ports.NewTask(9, "cat", func(context.Context) (domain.Reply, error) {
		close(started)
		<-release
		return domain.TextReply("too late"), nil
	})))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Shutdown(ctx), context.DeadlineExceeded)
}
