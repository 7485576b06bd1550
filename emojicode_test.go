package emojicode

import (
	"errors"
	"math/rand"
	"os"
	"path"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var defaultCodec EmojiCodec

var defaultCodes = []string{
	"100", "check", "clap", "fire", "grin", "heart", "joy", "ok_hand",
	"party", "pray", "rocket", "smile", "sob", "sparkles", "star",
	"tada", "thinking", "thumbsdown", "thumbsup", "wave", "x",
}

func init() {
	defaultCodec = NewDefaultCodec()
}

func TestEmojiCodec_ToEmoji(t *testing.T) {
	assert.Equal(t, "Nice 👍 🔥!",
		defaultCodec.ToEmoji("Nice :thumbsup: :fire:!"))
	assert.Equal(t, "unknown :notacode: here",
		defaultCodec.ToEmoji("unknown :notacode: here"))
	assert.Equal(t, "😄😄",
		defaultCodec.ToEmoji(":smile::smile:"))
	// Missing trailing colon: the token grammar requires both delimiters.
	assert.Equal(t, ":smile", defaultCodec.ToEmoji(":smile"))
	// A disallowed character inside the colons prevents the match.
	assert.Equal(t, ":not a code:", defaultCodec.ToEmoji(":not a code:"))
	assert.Equal(t, "", defaultCodec.ToEmoji(""))
}

func TestEmojiCodec_ToShortcodes(t *testing.T) {
	assert.Equal(t, "Great :thumbsup::fire:",
		defaultCodec.ToShortcodes("Great 👍🔥"))
	// Unmapped pictographs pass through unchanged.
	assert.Equal(t, "shrug 🤷", defaultCodec.ToShortcodes("shrug 🤷"))
	assert.Equal(t, "plain text", defaultCodec.ToShortcodes("plain text"))
	assert.Equal(t, "", defaultCodec.ToShortcodes(""))
}

func TestEmojiCodec_RoundTrip(t *testing.T) {
	for _, entry := range defaultCodec.Entries {
		token := ":" + entry.Code + ":"
		emojified := defaultCodec.ToEmoji(token)
		if emojified == token {
			t.Errorf("code %s did not resolve", entry.Code)
		}
		assert.Equal(t, token, defaultCodec.ToShortcodes(emojified))
	}
}

func TestEmojiCodec_Codes(t *testing.T) {
	codes := defaultCodec.Codes()
	assert.Equal(t, defaultCodes, codes)
	assert.Equal(t, "100", codes[0])
	assert.True(t, sort.StringsAreSorted(codes))
}

func TestEmojiCodec_RandomEmoji(t *testing.T) {
	assert.Equal(t, []string{}, defaultCodec.RandomEmoji(0))
	assert.Equal(t, []string{}, defaultCodec.RandomEmoji(-3))
	for _, n := range []int{1, 5, 21, 100} {
		emoji := defaultCodec.RandomEmoji(n)
		assert.Equal(t, n, len(emoji))
		for _, e := range emoji {
			if _, ok := defaultCodec.Decoder[e]; !ok {
				t.Errorf("sampled emoji %q not in vocabulary", e)
			}
		}
	}
}

func TestEmojiCodec_RandomEmojiSeeded(t *testing.T) {
	first, firstErr := NewCodecFromVocab(defaultCodec.Encoder)
	second, secondErr := NewCodecFromVocab(defaultCodec.Encoder)
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	first.Rand = rand.New(rand.NewSource(42))
	second.Rand = rand.New(rand.NewSource(42))
	assert.Equal(t, first.RandomEmoji(32), second.RandomEmoji(32))
}

func TestEmojiCodec_DuplicateEmojiTieBreak(t *testing.T) {
	codec, err := NewCodecFromVocab(Vocab{
		"plus_one": "👍",
		"thumbsup": "👍",
	})
	assert.NoError(t, err)
	// Last-wins over ascending code order: `thumbsup` claims the glyph.
	assert.Equal(t, ":thumbsup:", codec.ToShortcodes("👍"))
	assert.Equal(t, "👍", codec.ToEmoji(":plus_one:"))
}

func TestEmojiCodec_OverlappingEmojiOrder(t *testing.T) {
	// `a_heart` sorts before `heart` and its glyph is a strict prefix of
	// the two-codepoint heart. Its pass claims the span first, leaving the
	// orphaned variation selector behind.
	codec, err := NewCodecFromVocab(Vocab{
		"a_heart": "❤",
		"heart":   "❤️",
	})
	assert.NoError(t, err)
	assert.Equal(t, ":a_heart:️", codec.ToShortcodes("❤️"))
	assert.Equal(t, ":a_heart:", codec.ToShortcodes("❤"))
}

func TestEmojiCodec_DecodeCache(t *testing.T) {
	codec, err := NewCodecFromVocab(Vocab{"fire": "🔥"})
	assert.NoError(t, err)
	first := codec.ToShortcodes("🔥 sale")
	assert.Equal(t, int64(0), codec.LruHits)
	assert.Equal(t, int64(1), codec.LruMisses)
	second := codec.ToShortcodes("🔥 sale")
	assert.Equal(t, int64(1), codec.LruHits)
	assert.Equal(t, first, second)
}

func TestEmojiCodec_ConcurrentSubstitution(t *testing.T) {
	codec, err := NewCodecFromVocab(Vocab{"fire": "🔥", "tada": "🎉"})
	assert.NoError(t, err)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				assert.Equal(t, ":fire: sale :tada:",
					codec.ToShortcodes("🔥 sale 🎉"))
				assert.Equal(t, "🔥 sale 🎉",
					codec.ToEmoji(":fire: sale :tada:"))
			}
		}()
	}
	wg.Wait()
	// Every call lands on exactly one counter.
	assert.Equal(t, int64(400), codec.LruHits+codec.LruMisses)
}

func TestNewCodecFromVocab_Invalid(t *testing.T) {
	if _, err := NewCodecFromVocab(Vocab{"bad code": "🔥"}); err == nil {
		t.Error(errors.New("failed to return error on invalid shortcode"))
	}
	if _, err := NewCodecFromVocab(Vocab{"fire": ""}); err == nil {
		t.Error(errors.New("failed to return error on empty emoji"))
	}
}

func TestNewCodec_Resolution(t *testing.T) {
	_, err := NewCodec("default-vocab")
	if err != nil {
		t.Error(err)
	}
	_, err = NewCodec("nonexist/nonexist")
	if err == nil {
		t.Error(errors.New("failed to return error on non-existent vocab"))
	}
}

func TestNewCodec_LocalDir(t *testing.T) {
	dir := t.TempDir()
	vocabJson := []byte(`{"wave": "👋", "tada": "🎉"}`)
	if err := os.WriteFile(path.Join(dir, "vocab.json"), vocabJson,
		0644); err != nil {
		t.Fatal(err)
	}
	codec, err := NewCodec(dir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []string{"tada", "wave"}, codec.Codes())
	assert.Equal(t, "👋🎉", codec.ToEmoji(":wave::tada:"))
}
