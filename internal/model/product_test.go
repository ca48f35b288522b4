package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInput_Parse(t *testing.T) {
	tests := []struct {
		name        string
		input       ProductInput
		expected    ProductFields
		expectError bool
	}{
		{
			name:     "Valid input",
			input:    ProductInput{Name: "Nasi Goreng", Category: "makanan", Price: "15000", Bestseller: true},
			expected: ProductFields{Name: "Nasi Goreng", Category: "makanan", Price: 15000, Bestseller: true},
		},
		{
			name:     "Whitespace is trimmed",
			input:    ProductInput{Name: "  Es Teh ", Category: " minuman ", Price: " 5000 "},
			expected: ProductFields{Name: "Es Teh", Category: "minuman", Price: 5000},
		},
		{
			name:        "Non-numeric price",
			input:       ProductInput{Name: "Es Teh", Category: "minuman", Price: "abc"},
			expectError: true,
		},
		{
			name:        "Trailing garbage after digits",
			input:       ProductInput{Name: "Es Teh", Category: "minuman", Price: "5000rp"},
			expectError: true,
		},
		{
			name:        "Decimal price",
			input:       ProductInput{Name: "Es Teh", Category: "minuman", Price: "12.5"},
			expectError: true,
		},
		{
			name:        "Empty price",
			input:       ProductInput{Name: "Es Teh", Category: "minuman", Price: ""},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := tt.input.Parse()

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, KindValidation, KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, fields)
		})
	}
}

func TestProduct_Fields(t *testing.T) {
	p := Product{ID: 7, Name: "Mie Ayam", Category: "makanan", Price: 12000, ImageRef: "1.jpg", Bestseller: true}

	f := p.Fields()

	assert.Equal(t, ProductFields{Name: "Mie Ayam", Category: "makanan", Price: 12000, ImageRef: "1.jpg", Bestseller: true}, f)
}

func TestDomainError_MatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("get product 9: %w", ErrProductNotFound)

	assert.True(t, errors.Is(wrapped, ErrProductNotFound))
	assert.False(t, errors.Is(wrapped, ErrUnauthorised))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestDomainError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBackendError("failed to list products", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindBackend, KindOf(err))
	assert.Equal(t, "failed to list products: connection refused", err.Error())
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestImageSource_Variants(t *testing.T) {
	assert.Equal(t, ImageUnset, NoImage().Kind())

	existing := ExistingImage("https://cdn.example.com/1.png")
	assert.Equal(t, ImageExisting, existing.Kind())
	assert.Equal(t, "https://cdn.example.com/1.png", existing.Ref())

	pending := PendingImage([]byte{1, 2, 3}, "photo.jpg")
	data, name := pending.Upload()
	assert.Equal(t, ImagePending, pending.Kind())
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, "photo.jpg", name)
}
