package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueJSON(t *testing.T) {
	var set AnswerSet
	err := json.Unmarshal([]byte(`{"q1": 5, "q2": "Opción A", "q3": "4"}`), &set)
	require.NoError(t, err)

	assert.Equal(t, NumberAnswer(5), set["q1"])
	assert.Equal(t, TextAnswer("Opción A"), set["q2"])
	// Numeric-looking strings stay strings on the wire.
	assert.Equal(t, TextAnswer("4"), set["q3"])

	out, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1": 5, "q2": "Opción A", "q3": "4"}`, string(out))
}

func TestAnswerValueRejectsStructured(t *testing.T) {
	var v AnswerValue
	err := json.Unmarshal([]byte(`{"nested": true}`), &v)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`[1, 2]`), &v)
	assert.Error(t, err)
}

func TestRequiredQuestionIDs(t *testing.T) {
	survey := &Survey{
		Questions: []Question{
			{ID: "q1", Type: QuestionTypeLikert},
			{ID: "q2", Type: QuestionTypeMultipleChoice, Options: []string{"A"}},
			{ID: "q3", Type: QuestionTypeText},
		},
	}
	assert.Equal(t, []string{"q1", "q2"}, survey.RequiredQuestionIDs())
}
