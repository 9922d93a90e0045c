package kernel_test

import (
	"testing"

	"orderservice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const restaurantUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should create unique valid UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		require.NoError(t, id1.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
		assert.False(t, id1.IsEqual(id2))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should accept every textual form", func(t *testing.T) {
		for _, in := range []string{
			restaurantUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err, in)
			assert.Equal(t, restaurantUUID, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, in := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.UUIDFromString(in)

			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should parse the nil UUID but fail validation", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.NoError(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should create UUID from valid bytes", func(t *testing.T) {
		id, err := kernel.UUIDFromBytes([]byte{
			0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4,
			0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00,
		})

		require.NoError(t, err)
		assert.Equal(t, restaurantUUID, id.String())
	})

	t.Run("should reject short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFrom(t *testing.T) {
	t.Run("should adopt a parsed uuid", func(t *testing.T) {
		raw := uuid.MustParse(restaurantUUID)

		id, err := kernel.UUIDFrom(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.Bytes())
	})

	t.Run("should reject uuid.Nil", func(t *testing.T) {
		_, err := kernel.UUIDFrom(uuid.Nil)

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	id1, _ := kernel.UUIDFromString(restaurantUUID)
	id2, _ := kernel.UUIDFromString(restaurantUUID)

	assert.True(t, id1.IsEqual(id2))
	assert.False(t, id1.IsEqual(kernel.NewUUID()))

	var zero1, zero2 kernel.UUID
	assert.True(t, zero1.IsEqual(zero2))
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}

func TestUUID_Immutability(t *testing.T) {
	t.Run("modifying Bytes() result does not affect original UUID", func(t *testing.T) {
		original := kernel.NewUUID()
		originalString := original.String()

		bytes := original.Bytes()
		for i := range bytes {
			bytes[i] = 0xFF
		}

		assert.Equal(t, originalString, original.String())
	})
}
