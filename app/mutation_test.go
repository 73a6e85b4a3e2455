package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/terminalqa/domain"
)

func TestCoordinator_EmptyAnswerNeverIssuesRequest(t *testing.T) {
	writes := &fakeWrites{}
	refresher := &countingRefresher{}
	c := NewCoordinator(writes, refresher, nil)

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := c.SubmitAnswer(context.Background(), 1, content)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, MsgNeedAnswer, Notice(OpAnswer, err))
	}
	assert.Empty(t, writes.answers)
	assert.Zero(t, refresher.calls)
}

func TestCoordinator_AnswerSuccessRefreshesOnce(t *testing.T) {
	writes := &fakeWrites{}
	refresher := &countingRefresher{snap: domain.Snapshot{Questions: sampleQuestions()}}
	c := NewCoordinator(writes, refresher, nil)

	res, err := c.SubmitAnswer(context.Background(), 2, " my answer ")
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{" my answer "}, writes.answers)
	assert.Equal(t, 1, refresher.calls)
	assert.Len(t, res.Snapshot.Questions, 2)
}

func TestCoordinator_AnswerRejectionSurfacesDetail(t *testing.T) {
	writes := &fakeWrites{err: &domain.RejectionError{Op: "answer", Status: 401, Detail: "login required"}}
	refresher := &countingRefresher{}
	c := NewCoordinator(writes, refresher, nil)

	_, err := c.SubmitAnswer(context.Background(), 2, "text")
	require.Error(t, err)
	assert.Equal(t, "login required", Notice(OpAnswer, err))
	assert.Zero(t, refresher.calls)

	writes.err = &domain.RejectionError{Op: "answer", Status: 422}
	_, err = c.SubmitAnswer(context.Background(), 2, "text")
	assert.Equal(t, MsgAnswerFailed, Notice(OpAnswer, err))
}

func TestCoordinator_RatingSuccessRefreshesExactlyOnce(t *testing.T) {
	writes := &fakeWrites{}
	refresher := &countingRefresher{}
	c := NewCoordinator(writes, refresher, nil)

	target := domain.Target{Type: domain.TargetAnswer, ID: 9}
	_, err := c.SubmitRating(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{target}, writes.ratings)
	assert.Equal(t, 1, refresher.calls)
}

func TestCoordinator_RatingFailureTriggersNoRefresh(t *testing.T) {
	writes := &fakeWrites{err: &domain.RejectionError{Op: "rate", Status: 400, Detail: "already rated"}}
	refresher := &countingRefresher{}
	c := NewCoordinator(writes, refresher, nil)

	_, err := c.SubmitRating(context.Background(), domain.Target{Type: domain.TargetQuestion, ID: 1})
	require.Error(t, err)
	assert.Equal(t, "already rated", Notice(OpRate, err))
	assert.Zero(t, refresher.calls)

	writes.err = &domain.TransportError{Op: "rate", Err: errors.New("reset")}
	_, err = c.SubmitRating(context.Background(), domain.Target{Type: domain.TargetQuestion, ID: 1})
	assert.Equal(t, MsgNetworkError, Notice(OpRate, err))
	assert.Zero(t, refresher.calls)
}

func TestCoordinator_RatingRejectsUnknownTarget(t *testing.T) {
	writes := &fakeWrites{}
	c := NewCoordinator(writes, &countingRefresher{}, nil)

	_, err := c.SubmitRating(context.Background(), domain.Target{Type: "comment", ID: 1})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, writes.ratings)
}

func TestCoordinator_PerformSequencesWriteThenRefresh(t *testing.T) {
	var order []string
	refresher := refresherFunc(func(context.Context) (domain.Snapshot, error) {
		order = append(order, "refresh")
		return domain.Snapshot{}, nil
	})
	c := NewCoordinator(&fakeWrites{}, refresher, nil)

	_, err := c.Perform(context.Background(), func(context.Context) error {
		order = append(order, "write")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"write", "refresh"}, order)
}

func TestCoordinator_RefreshFailureIsReportedSeparately(t *testing.T) {
	refresher := &countingRefresher{err: &domain.TransportError{Op: "fetch", Err: errors.New("x")}}
	c := NewCoordinator(&fakeWrites{}, refresher, nil)

	res, err := c.SubmitRating(context.Background(), domain.Target{Type: domain.TargetQuestion, ID: 1})
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.Equal(t, MsgLoadFailed, Notice(OpLoad, res.Err))
}

type refresherFunc func(context.Context) (domain.Snapshot, error)

func (f refresherFunc) LoadAll(ctx context.Context) (domain.Snapshot, error) { return f(ctx) }
