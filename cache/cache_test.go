package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Coins int    `json:"coins"`
	}

	c.SetJSON(ctx, "key", payload{Name: "tech", Coins: 200}, time.Minute)

	var got payload
	require.True(t, c.GetJSON(ctx, "key", &got))
	assert.Equal(t, "tech", got.Name)
	assert.Equal(t, 200, got.Coins)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemory()

	var got string
	assert.False(t, c.GetJSON(context.Background(), "absent", &got))
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "key", []byte(`"v"`), 10*time.Millisecond)
	_, ok := store.Get(ctx, "key")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = store.Get(ctx, "key")
	assert.False(t, ok)
}

func TestInvalidateQuizData(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.SetJSON(ctx, CategoriesKey, []string{"a"}, time.Minute)
	c.SetJSON(ctx, QuestionsKey("tech", ""), []string{"b"}, time.Minute)
	c.SetJSON(ctx, "admin_session:abc", "token", time.Minute)

	c.InvalidateQuizData(ctx)

	var scratch interface{}
	assert.False(t, c.GetJSON(ctx, CategoriesKey, &scratch))
	assert.False(t, c.GetJSON(ctx, QuestionsKey("tech", ""), &scratch))
	assert.True(t, c.GetJSON(ctx, "admin_session:abc", &scratch))
}

func TestQuestionsKey(t *testing.T) {
	assert.Equal(t, "quiz_questions:tech", QuestionsKey("tech", ""))
	assert.Equal(t, "quiz_questions:tech:advanced", QuestionsKey("tech", "advanced"))
}
