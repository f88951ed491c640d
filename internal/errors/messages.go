package errors

import "fmt"

// Common error constructors for the relnotes CLI.
// These templates keep the remediation text consistent across commands.

// NetworkUnavailable is reported as a warning; the run continues.
func NetworkUnavailable(target string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot reach %s", target),
		"Check your network connection",
		"The run continues; API calls may fail",
	).WithCode(CodeNetworkUnavailable)
}

// MissingCredential creates an error for a missing GitHub token.
func MissingCredential() *CLIError {
	return NewPrerequisiteError(
		"GitHub token not found",
		"Pass it with --token <token>",
		"Or export RELNOTES_TOKEN (GITHUB_TOKEN is also honored)",
		"Create one at https://github.com/settings/tokens with the 'repo' scope",
	).WithCode(CodeMissingCredential)
}

// InvalidGroupSpec creates an error for an unusable group_by value.
func InvalidGroupSpec(value any) *CLIError {
	return NewConfigError(
		fmt.Sprintf("invalid group_by value: %v", value),
		"Use false for a flat list",
		"Use \"label\" to group by each issue's first label",
		"Or use a mapping of group names to label lists, e.g. {Bugs: [bug], Other: [\"...\"]}",
	).WithCode(CodeInvalidGroupSpec)
}

// NoReleasesFound creates an error when there are no releases to build a changelog from.
func NoReleasesFound() *CLIError {
	return NewRuntimeError(
		"the repository has no releases",
		"Run 'relnotes changelog --generate' to build the changelog from tags",
		"Or create releases first with 'relnotes release'",
	).WithCode(CodeNoReleasesFound)
}

// ChangelogAlreadyExists creates an error when the output file exists and override is off.
func ChangelogAlreadyExists(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog already exists: %s", path),
		"Run again with --override to replace it",
		"Or choose another file with --changelog-filename",
	).WithCode(CodeChangelogAlreadyExists)
}

// FileWrite creates an error when the changelog file cannot be written.
func FileWrite(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	).WithCode(CodeFileWrite)
}

// ExternalAPI wraps an error returned by the GitHub API. The original error
// is kept as the cause so callers can inspect it with errors.As.
func ExternalAPI(operation string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		operation,
		"Check that the token has access to the repository",
		"Run 'relnotes doctor' to diagnose issues",
	).WithCode(CodeExternalAPI)
}

// RepositoryNotResolved creates an error when owner/repo cannot be determined.
func RepositoryNotResolved(err error) *CLIError {
	msg := "cannot determine the GitHub repository"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &CLIError{
		Category: Prerequisite,
		Code:     CodeRepositoryNotResolved,
		Message:  msg,
		Remediation: []string{
			"Pass --username <owner> --repo <name>",
			"Or run inside a clone whose 'origin' remote points at GitHub",
		},
		Cause: err,
	}
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relnotes <command> --help' to see valid options",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to parse config file: %s", path),
		"Check the file for YAML/JSON syntax errors",
		"Run 'relnotes config show' to see the effective configuration",
	)
}
