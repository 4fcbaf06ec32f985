//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAsYouType(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Type("soup"))
	if !tf.SeePlain("Chicken Noodle Soup") {
		tf.DumpTailOnFail(t, "search-as-you-type", 4096)
		t.Fatal("soup results did not appear")
	}
	// four rows fit on screen, so the list runs out without scrolling
	assert.True(t, tf.SeePlain("No more recipes (4 shown)."))
}

func TestScrollLoadsMoreResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.SendKeys(KeyBottom))
	require.True(t, tf.SeePlain("Pasta Tofu Crema"), "page 2 should load at the bottom")

	require.NoError(t, tf.SendKeys(KeyBottom))
	if !tf.SeePlain("No more recipes (37 shown).") {
		tf.DumpTailOnFail(t, "scroll", 4096)
		t.Fatal("results did not run out")
	}
}

func TestVeganFilter(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.SendKeys(KeyVegan))
	assert.True(t, tf.SeePlain("[x] Vegan (v)"))
}

func TestHeadlessSearchAndCart(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	out, err := tf.Run("", "search", "pasta", "--pages", "0")
	require.NoError(t, err, out)
	assert.True(t, strings.HasSuffix(out, "25 recipes.\n"), out)

	out, err = tf.Run("", "cart")
	require.Error(t, err)
	assert.Contains(t, out, "Log in to use the cart")

	out, err = tf.Run(demoPassword+"\n", "login", demoUser)
	require.NoError(t, err, out)

	out, err = tf.Run("", "cart", "add", "3")
	require.NoError(t, err, out)

	out, err = tf.Run("", "cart")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Tomatoes")
}

func TestCartScreenShowsLoginHint(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.SendKeys(KeyCart))
	assert.True(t, tf.OutputContainsPlain("Not logged in", 2*time.Second))
}
