package config

// Documented defaults for every optional setting. Each resolved field's
// fallback is one of these named values.
const (
	// DefaultAPIURL is the GitHub REST endpoint used when a server
	// omits api-url.
	DefaultAPIURL = "https://api.github.com/"

	// DefaultURL is the web URL used when a server omits url.
	DefaultURL = "https://github.com/"

	// DefaultGitURL is the clone base used when a server omits git-url.
	DefaultGitURL = "https://github.com/"

	// defaultDBFile is the sqlite database file, relative to home.
	defaultDBFile = "~/.hubtty.db"

	// defaultSocket is the command socket path, relative to home.
	defaultSocket = "~/.hubtty.sock"

	// defaultLogFile is the per-server log file, relative to home.
	defaultLogFile = "~/.hubtty.log"

	// defaultLockFilePattern is the per-server lock file; %s is the
	// server name.
	defaultLockFilePattern = "~/.hubtty.%s.lock"

	// DefaultChangeListQuery filters project change lists.
	DefaultChangeListQuery = "status:open"

	// DefaultDiffView is the diff presentation mode.
	DefaultDiffView = "side-by-side"

	// DefaultExpireAge is how long closed changes are kept locally.
	DefaultExpireAge = "2 months"

	// DefaultSortBy orders change lists.
	DefaultSortBy = "number"

	// DefaultSizeColumnType is the change-size display mode.
	DefaultSizeColumnType = "graph"

	// Boolean setting defaults.
	DefaultThreadChanges       = true
	DefaultDisplayTimesInUTC   = false
	DefaultBreadcrumbs         = true
	DefaultCloseChangeOnReview = false
	DefaultHandleMouse         = true
	DefaultSortReverse         = false
)

// Size-column threshold defaults. The graph mode draws a four-segment
// bar; every other non-disabled mode buckets into eight.
var (
	DefaultGraphThresholds = []int{1, 10, 100, 1000}
	DefaultSplitThresholds = []int{1, 10, 100, 200, 400, 600, 800, 1000}
)
