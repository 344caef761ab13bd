package wordsource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakePicker struct {
	word string
	err  error
}

func (f fakePicker) FindRandomWord(_ *gorm.DB, _ string) (string, error) {
	return f.word, f.err
}

type ctxPicker struct {
	got context.Context
}

func (p *ctxPicker) FindRandomWord(db *gorm.DB, _ string) (string, error) {
	if db != nil {
		p.got = db.Statement.Context
	}
	return "horse", nil
}

type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeCompleter struct {
	answer string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func TestCatalog(t *testing.T) {
	w, err := (&Catalog{Picker: fakePicker{word: "horse"}}).Word(context.Background(), "animal")
	require.NoError(t, err)
	assert.Equal(t, "horse", w)

	_, err = (&Catalog{Picker: fakePicker{err: gorm.ErrRecordNotFound}}).Word(context.Background(), "animal")
	assert.ErrorIs(t, err, ErrNoWord)
}

type ctxKey struct{}

func TestCatalog_UsesCallerContext(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "generate")
	picker := &ctxPicker{}
	_, err = (&Catalog{DB: db, Picker: picker}).Word(ctx, "animal")
	require.NoError(t, err)

	require.NotNil(t, picker.got)
	assert.Equal(t, "generate", picker.got.Value(ctxKey{}))
}

func TestAI_BoundedByTimeout(t *testing.T) {
	start := time.Now()
	_, err := (&AI{Completer: blockingCompleter{}, Timeout: 20 * time.Millisecond}).Word(context.Background(), "animal")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestAI(t *testing.T) {
	tests := []struct {
		answer string
		want   string
		ok     bool
	}{
		{"Tiger", "tiger", true},
		{` "bus". `, "bus", true},
		{"a red apple", "", false},
		{"café", "", false},
		{"x", "", false},
	}
	for _, tt := range tests {
		c := &fakeCompleter{answer: tt.answer}
		w, err := (&AI{Completer: c}).Word(context.Background(), "animal")
		if !tt.ok {
			assert.ErrorIs(t, err, ErrNoWord, tt.answer)
			continue
		}
		require.NoError(t, err, tt.answer)
		assert.Equal(t, tt.want, w)
		assert.Contains(t, c.prompt, "'animal'")
	}
}

func TestChain(t *testing.T) {
	failing := &AI{Completer: &fakeCompleter{err: errors.New("quota")}}
	catalog := &Catalog{Picker: fakePicker{word: "carrot"}}

	w, err := (&Chain{Sources: []Source{failing, catalog}}).Word(context.Background(), "food")
	require.NoError(t, err)
	assert.Equal(t, "carrot", w)

	_, err = (&Chain{Sources: []Source{failing}}).Word(context.Background(), "food")
	assert.EqualError(t, err, "quota")

	_, err = (&Chain{}).Word(context.Background(), "food")
	assert.ErrorIs(t, err, ErrNoWord)
}
