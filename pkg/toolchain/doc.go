/*
Package toolchain resolves the filesystem location of the external EDA tools.

Resolution is a pure function of the platform tag and an environment lookup:
each platform contributes a Layout (home variable, install sub-directory and
per-tool relative paths) and Resolve joins them into a domain.ToolchainLocation.
*/
package toolchain
