package validate_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uploadkit/pkg/validate"
)

func TestMessageResolution(t *testing.T) {
	t.Parallel()

	t.Run("literal override wins verbatim", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 100})
		v.MaxSize(10, validate.WithMessage("file is too big"))
		assert.Equal(t, []string{"file is too big"}, v.Errors())
	})

	t.Run("message func receives the exact bound", func(t *testing.T) {
		t.Parallel()
		var got any
		v := validate.New(flatFile{size: 100})
		v.MaxSize(10, validate.WithMessageFunc(func(bound any) string {
			got = bound
			return fmt.Sprintf("limit is %d bytes", bound.(int64))
		}))
		assert.Equal(t, int64(10), got)
		assert.Equal(t, []string{"limit is 10 bytes"}, v.Errors())

		v2 := validate.New(flatFile{mimeType: "text/plain"})
		v2.MIMETypeInclusion([]string{"image/jpeg", "image/png"}, validate.WithMessageFunc(func(bound any) string {
			return fmt.Sprintf("%d types allowed", len(bound.([]string)))
		}))
		assert.Equal(t, []string{"2 types allowed"}, v2.Errors())
	})

	t.Run("empty literal is honored, not treated as unset", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 100})
		v.MaxSize(10, validate.WithMessage(""))
		assert.Equal(t, []string{""}, v.Errors())
	})

	t.Run("literal takes precedence over func", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 100})
		v.MaxSize(10,
			validate.WithMessage("literal"),
			validate.WithMessageFunc(func(any) string { return "func" }),
		)
		assert.Equal(t, []string{"literal"}, v.Errors())
	})

	t.Run("table overrides merge additively", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 100},
			validate.WithMessages(map[validate.Kind]validate.MessageFunc{
				validate.KindMaxSize: func(any) string { return "too big" },
			}),
			validate.WithMessages(map[validate.Kind]validate.MessageFunc{
				validate.KindMinSize: func(any) string { return "too small" },
			}),
		)
		v.MaxSize(10)
		v.MinSize(1000)
		// Both overrides active: the second map did not wipe the first.
		assert.Equal(t, []string{"too big", "too small"}, v.Errors())
	})

	t.Run("later override wins per key", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 100},
			validate.WithMessages(map[validate.Kind]validate.MessageFunc{
				validate.KindMaxSize: func(any) string { return "first" },
			}),
			validate.WithMessages(map[validate.Kind]validate.MessageFunc{
				validate.KindMaxSize: func(any) string { return "second" },
			}),
		)
		v.MaxSize(10)
		assert.Equal(t, []string{"second"}, v.Errors())
	})

	t.Run("overrides do not leak across validators", func(t *testing.T) {
		t.Parallel()
		custom := validate.New(flatFile{size: 100},
			validate.WithMessages(map[validate.Kind]validate.MessageFunc{
				validate.KindMaxSize: func(any) string { return "custom" },
			}),
		)
		custom.MaxSize(10)
		require.Equal(t, []string{"custom"}, custom.Errors())

		plain := validate.New(flatFile{size: 100})
		plain.MaxSize(10)
		assert.Equal(t, []string{"size must not be greater than 10.0 B"}, plain.Errors())
	})

	t.Run("nil producers are ignored, default stays", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 100},
			validate.WithMessages(map[validate.Kind]validate.MessageFunc{
				validate.KindMaxSize: nil,
			}),
		)
		v.MaxSize(10)
		assert.Equal(t, []string{"size must not be greater than 10.0 B"}, v.Errors())
	})

	t.Run("default size messages use binary units", func(t *testing.T) {
		t.Parallel()
		v := validate.New(flatFile{size: 4 * 1024 * 1024})
		v.MaxSize(1024 * 1024)
		assert.Equal(t, []string{"size must not be greater than 1.0 MB"}, v.Errors())
	})
}
