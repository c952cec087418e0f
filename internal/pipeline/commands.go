package pipeline

// CommandSet is one row of the package-manager command table: the literal
// shell commands every step emitter routes through. Keeping these in a
// single table means adding a package manager touches one row instead of
// every call site.
type CommandSet struct {
	// Install installs dependencies from the lock file.
	Install string

	// CacheDir prints the package manager's cache directory.
	CacheDir string

	// LockFile is the lock file name used in cache keys.
	LockFile string

	// GlobalEAS installs the EAS CLI globally.
	GlobalEAS string

	// TypeCheck runs the TypeScript compiler in check-only mode.
	TypeCheck string

	// Lint runs ESLint over the project.
	Lint string

	// FormatCheck runs Prettier in check mode.
	FormatCheck string

	// Jest runs the unit test suite.
	Jest string

	// RNTL runs the React Native Testing Library component suite.
	RNTL string

	// Hooks runs the render-hook test suite.
	Hooks string
}

// commandTable is the single source of truth for package-manager commands.
var commandTable = map[PackageManager]CommandSet{
	Yarn: {
		Install:     "yarn install --frozen-lockfile",
		CacheDir:    "yarn cache dir",
		LockFile:    "yarn.lock",
		GlobalEAS:   "yarn global add eas-cli",
		TypeCheck:   "yarn tsc --noEmit",
		Lint:        "yarn eslint .",
		FormatCheck: "yarn prettier --check .",
		Jest:        "yarn jest --ci --passWithNoTests",
		RNTL:        "yarn jest --ci --testPathPattern='__tests__/components'",
		Hooks:       "yarn jest --ci --testPathPattern='__tests__/hooks'",
	},
	NPM: {
		Install:     "npm ci",
		CacheDir:    "npm config get cache",
		LockFile:    "package-lock.json",
		GlobalEAS:   "npm install -g eas-cli",
		TypeCheck:   "npx tsc --noEmit",
		Lint:        "npx eslint .",
		FormatCheck: "npx prettier --check .",
		Jest:        "npx jest --ci --passWithNoTests",
		RNTL:        "npx jest --ci --testPathPattern='__tests__/components'",
		Hooks:       "npx jest --ci --testPathPattern='__tests__/hooks'",
	},
	PNPM: {
		Install:     "pnpm install --frozen-lockfile",
		CacheDir:    "pnpm store path",
		LockFile:    "pnpm-lock.yaml",
		GlobalEAS:   "pnpm add -g eas-cli",
		TypeCheck:   "pnpm tsc --noEmit",
		Lint:        "pnpm eslint .",
		FormatCheck: "pnpm prettier --check .",
		Jest:        "pnpm jest --ci --passWithNoTests",
		RNTL:        "pnpm jest --ci --testPathPattern='__tests__/components'",
		Hooks:       "pnpm jest --ci --testPathPattern='__tests__/hooks'",
	},
}

// Commands returns the command set for the given package manager,
// degrading to the default row for unknown values.
func Commands(pm PackageManager) CommandSet {
	if cs, ok := commandTable[pm]; ok {
		return cs
	}
	return commandTable[DefaultPackageManager]
}
