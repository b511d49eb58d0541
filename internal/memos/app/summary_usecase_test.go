package app_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gogetmemo/internal/memos/app"
	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/internal/memos/metrics"
)

func TestSummaryUseCase_Summarize(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		content     string
		callsRemote bool
		remote      string
		remoteErr   error
		wantErr     error
		want        string
	}{
		{name: "empty content", content: "", wantErr: entities.ErrEmptyContent},
		{name: "whitespace content", content: " \n\t", wantErr: entities.ErrEmptyContent},
		{name: "summary returned", content: "long memo", callsRemote: true, remote: "- point", want: "- point"},
		{
			name:        "missing credential propagates",
			content:     "long memo",
			callsRemote: true,
			remoteErr:   &entities.ConfigError{Key: "GEMINI_API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer := new(mockSummarizer)
			if tt.callsRemote {
				summarizer.On("Summarize", mock.Anything, tt.content).Return(tt.remote, tt.remoteErr).Once()
			}

			uc := app.NewSummaryUseCase(summarizer, nil)
			got, err := uc.Summarize(ctx, tt.content)

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.remoteErr != nil:
				require.ErrorIs(t, err, tt.remoteErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			if !tt.callsRemote {
				summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
			}
			summarizer.AssertExpectations(t)
		})
	}
}

func TestSummaryUseCase_RecordsOutcome(t *testing.T) {
	summarizer := new(mockSummarizer)
	summarizer.On("Summarize", mock.Anything, "x").Return("- y", nil)

	collector := metrics.NewCollector("memos_app_test")
	uc := app.NewSummaryUseCase(summarizer, collector)

	_, err := uc.Summarize(context.Background(), "x")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(collector.Registry(), "memos_app_test_summarize_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
