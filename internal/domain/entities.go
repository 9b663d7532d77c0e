// Package domain defines the core business entities and interfaces for nativize.
package domain

// EffectiveConfig is the result of merging the install, user, and project
// dependency descriptors. Only the attributes the build pipeline consumes
// are represented here; everything else in the descriptors is opaque.
type EffectiveConfig struct {
	// SourceRoots are the directories scanned for compilable source files.
	// Roots that do not exist on disk are skipped during discovery.
	SourceRoots []string
}

// BuildOptions is the immutable record of one build invocation's inputs.
// It is constructed once from the command line and never mutated.
type BuildOptions struct {
	// EntryUnit is the fully-qualified name of the unit whose entry point
	// the native executable will expose.
	EntryUnit string

	// Precompile is a comma-separated list of unit names to compile before
	// the entry unit. May be empty.
	Precompile string

	// NativeImagePath is the resolved absolute path of the native-image
	// binary. It is always populated by the time the pipeline runs; the
	// command layer resolves it via the BinaryLocator or the override flag.
	NativeImagePath string

	// ScratchDir is the staging directory compiled artifacts are written
	// into. Wiped and recreated at the start of every build.
	ScratchDir string

	// Echo prints the fully assembled native-image invocation before
	// executing it.
	Echo bool

	// ExtraArgs are passed to native-image verbatim, in order. They are
	// everything after the literal "--" on the command line.
	ExtraArgs []string
}

// BuildResult is the outcome of a completed build pipeline.
type BuildResult struct {
	// ExitCode is the exit code of the native-image subprocess. The
	// process running the build terminates with this code.
	ExitCode int
}

// DefaultScratchDir is the staging directory used when no other scratch
// path is configured. Relative to the working directory of the build.
const DefaultScratchDir = "target/classes"

// ToolPathMarker identifies this tool's own entries on the inherited
// search path. Entries containing it are removed so the tool does not
// end up inside the compiled artifact's class path.
const ToolPathMarker = "nativize"

// Environment variable names consulted by the pipeline.
const (
	// EnvGraalVMHome points at the GraalVM installation consulted by the
	// binary locator and the AOT compiler.
	EnvGraalVMHome = "GRAALVM_HOME"

	// EnvClassPath is the inherited search path the search-path builder
	// starts from.
	EnvClassPath = "CLASSPATH"
)

// DescriptorFileName is the dependency descriptor file name looked up at
// each of the three precedence layers (install, user, project).
const DescriptorFileName = "deps.toml"
