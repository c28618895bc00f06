package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocompare/autocompare/internal/cars"
)

func TestClient_Chat(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "42"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "gpt-4o-mini")
	got, err := c.Chat(context.Background(), "system", "user")
	require.NoError(t, err)

	assert.Equal(t, "42", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Zero(t, gotReq.Temperature)
}

func TestClient_Chat_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	t.Run("missing key", func(t *testing.T) {
		c := NewClient(srv.URL, "", "m")
		_, err := c.Chat(context.Background(), "s", "u")
		assert.Error(t, err)
	})

	t.Run("empty prompt", func(t *testing.T) {
		c := NewClient(srv.URL, "sk", "m")
		_, err := c.Chat(context.Background(), "", "u")
		assert.Error(t, err)
	})

	t.Run("non-200 status", func(t *testing.T) {
		c := NewClient(srv.URL, "sk", "m")
		_, err := c.Chat(context.Background(), "s", "u")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

type stubChatter struct {
	reply     string
	err       error
	gotSystem string
	gotUser   string
}

func (s *stubChatter) Chat(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.gotSystem = systemPrompt
	s.gotUser = userPrompt
	return s.reply, s.err
}

func TestAdvisor_Ask_ParsesJSON(t *testing.T) {
	chat := &stubChatter{reply: `{"answer":"A","summary":"S","sources":["https://x"]}`}
	adv := NewAdvisor(chat)

	res, err := adv.Ask(context.Background(), "Is a 2018 Audi reliable?", nil)
	require.NoError(t, err)

	assert.Equal(t, "A", res.Answer)
	assert.Equal(t, "S", res.Summary)
	assert.Equal(t, []string{"https://x"}, res.Sources)
	assert.Contains(t, chat.gotUser, "Is a 2018 Audi reliable?")
}

func TestAdvisor_Ask_FallsBackToRawText(t *testing.T) {
	chat := &stubChatter{reply: "plain prose, no JSON"}
	adv := NewAdvisor(chat)

	res, err := adv.Ask(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain prose, no JSON", res.Answer)
	assert.Empty(t, res.Summary)
}

func TestAdvisor_Ask_IncludesLocalContext(t *testing.T) {
	chat := &stubChatter{reply: `{}`}
	adv := NewAdvisor(chat)

	local := []cars.Car{
		{Brand: "Audi", Model: "Model C", Year: 2018, Mileage: 90000, Owners: 2,
			KnownIssues: []string{"Oil leak"}},
	}
	_, err := adv.Ask(context.Background(), "q", local)
	require.NoError(t, err)

	assert.Contains(t, chat.gotUser, "Brand: Audi")
	assert.Contains(t, chat.gotUser, "Oil leak")
}

func TestAdvisor_Ask_EmptyQuestion(t *testing.T) {
	adv := NewAdvisor(&stubChatter{})
	_, err := adv.Ask(context.Background(), "  ", nil)
	assert.Error(t, err)
}
