/*
Package pipeline composes external tool invocations into the user-facing
operations of fpgaflow: build, upload and clean.

Every operation is a finite, strictly sequential list of stages with
fail-fast semantics: the first stage that does not succeed stops the
operation and is returned as a *domain.StageFailure. Nothing is retried,
and artifacts are left exactly as the failing tool wrote them.
*/
package pipeline
