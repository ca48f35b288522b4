package asset

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyGenerator_Next(t *testing.T) {
	g := NewKeyGenerator(fixedClock())

	assert.Equal(t, "1700000000000000000.jpg", g.Next("photo.JPG"))
	assert.Equal(t, "1700000000000000001.png", g.Next("photo.png"), "same tick still advances")
	assert.Equal(t, "1700000000000000002.bin", g.Next("README"))
	assert.Equal(t, "1700000000000000003.bin", g.Next("weird.p?g"))
}

func TestKeyGenerator_FollowsClock(t *testing.T) {
	now := time.Unix(100, 0)
	g := NewKeyGenerator(func() time.Time { return now })

	first := g.Next("a.png")
	now = now.Add(time.Second)
	second := g.Next("a.png")

	assert.Equal(t, "100000000000.png", first)
	assert.Equal(t, "101000000000.png", second)
}

func TestKeyGenerator_ConcurrentKeysAreUnique(t *testing.T) {
	g := NewKeyGenerator(fixedClock())

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := g.Next("a.webp")
			mu.Lock()
			seen[key] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
}

func TestKeyFromRef(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{ref: "1700000000.jpg", expected: "1700000000.jpg"},
		{ref: "https://x.supabase.co/storage/v1/object/public/produk-images/1700000000.jpg", expected: "1700000000.jpg"},
		{ref: "https://cdn.example.com/img/1.png?width=200#top", expected: "1.png"},
		{ref: "/images/2.webp", expected: "2.webp"},
		{ref: "https://cdn.example.com/img/nasi%20goreng.png", expected: "nasi goreng.png"},
		{ref: "https://cdn.example.com/", expected: ""},
		{ref: "https://cdn.example.com", expected: ""},
		{ref: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyFromRef(tt.ref))
		})
	}
}
