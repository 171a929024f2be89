package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arpriyadarshi/ey-pharma/internal/agent"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

const validReportJSON = `{
	"executive_summary": "Oncology in India shows strong momentum.",
	"sections": [
		{
			"title": "Clinical Landscape",
			"insights": "Trial activity is concentrated in late phases.",
			"charts": [{"type": "bar", "data": {"Phase 3": 2, "Phase 1": 1}}],
			"tables": [[{"sponsor": "Merck", "trials": 2}, {"sponsor": "BMS", "trials": 1}]]
		}
	],
	"final_recommendation": "Enter via partnership."
}`

func TestSynthesizer_BuildsReport(t *testing.T) {
	ai := &mockClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(validReportJSON), nil)

	s := NewSynthesizer(ai, testAnthropicConfig())
	report, usage, err := s.Synthesize(context.Background(), "oncology in India",
		model.StructuredQuery{Disease: "oncology", Country: "India"},
		agent.Outputs{agent.KeyWebIntelligence: agent.WebIntelligence(model.StructuredQuery{Disease: "oncology"})})

	require.NoError(t, err)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Clinical Landscape", report.Sections[0].Title)
	assert.Equal(t, "Enter via partnership.", report.FinalRecommendation)
	assert.Equal(t, 100, usage.InputTokens)
}

func TestSynthesizer_OptionalRecommendation(t *testing.T) {
	ai := &mockClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"executive_summary": "Summary.", "sections": []}`), nil)

	s := NewSynthesizer(ai, testAnthropicConfig())
	report, _, err := s.Synthesize(context.Background(), "q", model.StructuredQuery{}, agent.Outputs{})

	require.NoError(t, err)
	assert.Empty(t, report.FinalRecommendation)
}

func TestSynthesizer_UnknownChartTypeIsMalformed(t *testing.T) {
	ai := &mockClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{
			"executive_summary": "s",
			"sections": [{"title": "t", "insights": "i", "charts": [{"type": "pie", "data": {"a": 1}}]}]
		}`), nil)

	s := NewSynthesizer(ai, testAnthropicConfig())
	_, _, err := s.Synthesize(context.Background(), "q", model.StructuredQuery{}, agent.Outputs{})

	assert.True(t, eris.Is(err, ErrMalformedExtraction))
}

func TestSynthesizer_StringChartValueIsMalformed(t *testing.T) {
	ai := &mockClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{
			"executive_summary": "s",
			"sections": [{"title": "t", "insights": "i", "charts": [{"type": "bar", "data": {"a": "high"}}]}]
		}`), nil)

	s := NewSynthesizer(ai, testAnthropicConfig())
	_, _, err := s.Synthesize(context.Background(), "q", model.StructuredQuery{}, agent.Outputs{})

	assert.True(t, eris.Is(err, ErrMalformedExtraction))
}

func TestSynthesizer_RaggedTableIsMalformed(t *testing.T) {
	ai := &mockClient{}
	ai.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{
			"executive_summary": "s",
			"sections": [{"title": "t", "insights": "i", "tables": [[{"a": 1}, {"a": 1, "b": 2}]]}]
		}`), nil)

	s := NewSynthesizer(ai, testAnthropicConfig())
	_, _, err := s.Synthesize(context.Background(), "q", model.StructuredQuery{}, agent.Outputs{})

	assert.True(t, eris.Is(err, ErrMalformedExtraction))
}
