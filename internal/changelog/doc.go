// Package changelog assembles and writes the changelog file.
//
// A changelog is the configured title followed by one section per release,
// rendered through the release template and joined by the release separator.
// Entries come either from synthesized blocks (generate mode) or from the
// releases that already exist in the repository. The file is written once,
// after every entry has been rendered.
package changelog
