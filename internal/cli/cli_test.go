package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pantry/internal/apistub"
	"pantry/internal/cart"
	"pantry/internal/mealplan"
)

type env struct {
	t      *testing.T
	dir    string
	apiURL string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat := apistub.SeedCatalog()
	require.NoError(t, cat.AddUser("ana", "secret"))
	s, err := apistub.NewServer(cat, apistub.Options{Secret: "test-secret"})
	require.NoError(t, err)
	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("PANTRY_LOG_FILE", filepath.Join(dir, "pantry.log"))
	t.Setenv("PANTRY_API_URL", "")
	t.Setenv("PANTRY_PAGE_SIZE", "")
	return &env{t: t, dir: dir, apiURL: srv.URL}
}

func (e *env) configPath() string {
	return filepath.Join(e.dir, "config.toml")
}

// run executes pantry with args and returns stdout
func (e *env) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	cmd, a := newRootCommand()
	defer a.close()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath(), "--api", e.apiURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchPrintsFirstPage(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("", "search", "pasta")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 21)
	assert.Contains(t, lines[0], "Pasta Pomodoro")
	assert.Contains(t, lines[0], "[Vegan")
	assert.Equal(t, "20 recipes, more available (use --pages).", lines[20])
}

func TestSearchAllPages(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("", "search", "pasta", "--pages", "0")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "25 recipes.\n"), out)
}

func TestSearchPageSizeAndFilters(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("", "search", "soup", "--vegan", "--gluten-free", "--page-size", "2", "--pages", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Tomato Basil Soup")
	assert.NotContains(t, out, "Chicken Noodle Soup")
	assert.Contains(t, out, "3 recipes.")
}

func TestSearchNoResults(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("", "search", "zzzz")
	require.NoError(t, err)
	assert.Equal(t, "No recipes found.\n", out)
}

func TestSearchReportsFetchFailure(t *testing.T) {
	e := newEnv(t)
	dead := httptest.NewServer(nil)
	e.apiURL = dead.URL
	dead.Close()

	_, err := e.run("", "search", "pasta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), mealplan.FetchFailedMessage)
}

func TestSearchRejectsNegativePages(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "search", "--pages", "-1")
	require.Error(t, err)
}

func TestLoginCartLogout(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("secret\n", "login", "ana")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as ana.\n", out)

	_, err = os.Stat(filepath.Join(e.dir, "session.toml"))
	require.NoError(t, err)

	out, err = e.run("", "cart")
	require.NoError(t, err)
	assert.Equal(t, "Your cart is empty.\n", out)

	_, err = e.run("", "cart", "add", "3", "2")
	require.NoError(t, err)
	_, err = e.run("", "cart", "add", "4")
	require.NoError(t, err)

	out, err = e.run("", "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Tomatoes")
	assert.Contains(t, out, "Basil")
	assert.Contains(t, out, "Total: $4.85")

	_, err = e.run("", "cart", "rm", "4")
	require.NoError(t, err)
	out, err = e.run("", "cart")
	require.NoError(t, err)
	assert.NotContains(t, out, "Basil")

	out, err = e.run("", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)

	_, err = e.run("", "cart")
	require.Error(t, err)
	assert.Equal(t, cart.NotLoggedInMessage, err.Error())
}

func TestLoginWithWrongPassword(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("nope\n", "login", "ana")
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(e.dir, "session.toml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSignupThenLogin(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("pw\n", "signup", "bea", "--email", "bea@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "pantry login bea")

	_, err = e.run("pw\n", "signup", "bea", "--email", "bea@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = e.run("pw\n", "signup", "cy")
	require.Error(t, err)

	out, err = e.run("pw\n", "login", "bea")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as bea.")
}

func TestCartAddValidatesArgs(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "cart", "add", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item id")

	_, err = e.run("", "cart", "add", "3", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestConfigInitAndShow(t *testing.T) {
	e := newEnv(t)

	out, err := e.run("", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, e.configPath())

	_, err = e.run("", "config", "init")
	require.Error(t, err)
	_, err = e.run("", "config", "init", "--force")
	require.NoError(t, err)

	out, err = e.run("", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "page_size = 20")
	assert.Contains(t, out, e.apiURL)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.configPath(), []byte("[search]\npage_size = 0\n"), 0o644))

	_, err := e.run("", "search", "pasta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestConfigInitForceRepairsInvalidFile(t *testing.T) {
	e := newEnv(t)

	for _, broken := range []string{"[search]\npage_size = 0\n", "[search\npage_size = = 20\n"} {
		require.NoError(t, os.WriteFile(e.configPath(), []byte(broken), 0o644))

		_, err := e.run("", "config", "show")
		require.Error(t, err)

		_, err = e.run("", "config", "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--force")

		out, err := e.run("", "config", "init", "--force")
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote "+e.configPath())

		out, err = e.run("", "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "page_size = 20")
	}
}

func TestConfigInitLogsSave(t *testing.T) {
	e := newEnv(t)

	_, err := e.run("", "config", "init")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(e.dir, "pantry.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "config saved")
}

func TestFailedCommandStillClosesBus(t *testing.T) {
	e := newEnv(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	_, err := e.run("", "cart", "add", "0")
	require.Error(t, err)
}
