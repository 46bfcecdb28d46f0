package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSummarize_GroupsByBoardCode(t *testing.T) {
	s := NewSummarizer(zap.NewNop())

	records := []ImageRecord{
		{Name: "pcb/2024-05-01/OK_11_0001.jpg", URL: "http://img/1"},
		{Name: "pcb/2024-05-01/OK_11_0002.jpg", URL: "http://img/2"},
		{Name: "pcb/2024-05-01/NG_0_0003.jpg", URL: "http://img/3"},
	}

	summaries := s.Summarize(records)

	require.Len(t, summaries, 1, "code 0 images must be excluded")
	assert.Equal(t, 11, summaries[0].BoardTypeCode)
	assert.Equal(t, 2, summaries[0].ProducedCount)
	assert.Equal(t, "2024-05-01", summaries[0].ManufactureDate)
	assert.Equal(t, []string{"http://img/1", "http://img/2"}, summaries[0].ImageURLs)
	assert.Equal(t, "PCB-MAIN-A11", summaries[0].Board.Name)
}

func TestSummarize_SkipsUnparseableNames(t *testing.T) {
	s := NewSummarizer(zap.NewNop())

	records := []ImageRecord{
		{Name: "thumbnail.png", URL: "http://img/a"},
		{Name: "pcb/notadate/OK_11_0001.jpg", URL: "http://img/b"},
		{Name: "pcb/2024-05-01/OK_21_0001.jpg", URL: "http://img/c"},
	}

	summaries := s.Summarize(records)

	require.Len(t, summaries, 1)
	assert.Equal(t, 21, summaries[0].BoardTypeCode)
	assert.Equal(t, 1, summaries[0].ProducedCount)
}

func TestSummarize_FirstSeenOrderAndFirstDate(t *testing.T) {
	s := NewSummarizer(zap.NewNop())

	records := []ImageRecord{
		{Name: "pcb/2024-05-01/OK_21_0001.jpg", URL: "http://img/1"},
		{Name: "pcb/2024-05-01/OK_11_0001.jpg", URL: "http://img/2"},
		// Later date for code 21 must not replace the first one captured.
		{Name: "pcb/2024-05-02/OK_21_0002.jpg", URL: "http://img/3"},
	}

	summaries := s.Summarize(records)

	require.Len(t, summaries, 2)
	assert.Equal(t, 21, summaries[0].BoardTypeCode)
	assert.Equal(t, 11, summaries[1].BoardTypeCode)
	assert.Equal(t, "2024-05-01", summaries[0].ManufactureDate)
	assert.Equal(t, 2, summaries[0].ProducedCount)
}

func TestSummarize_Idempotent(t *testing.T) {
	s := NewSummarizer(zap.NewNop())

	records := []ImageRecord{
		{Name: "pcb/2024-05-01/OK_11_0001.jpg", URL: "http://img/1"},
		{Name: "pcb/2024-05-01/OK_31_0001.jpg", URL: "http://img/2"},
		{Name: "pcb/2024-05-01/OK_11_0002.jpg", URL: "http://img/3"},
	}

	first := s.Summarize(records)
	second := s.Summarize(records)

	assert.Equal(t, first, second)
}

func TestSummarize_UnknownCodeResolvesToUnknownBoard(t *testing.T) {
	s := NewSummarizer(zap.NewNop())

	summaries := s.Summarize([]ImageRecord{
		{Name: "pcb/2024-05-01/OK_99_0001.jpg", URL: "http://img/1"},
	})

	require.Len(t, summaries, 1)
	assert.Equal(t, "unknown", summaries[0].Board.Name)
}
