// Package itests holds the integration tests. TestMain loads one shared test
// context from testdata/config (environment "itest") and the process
// environment; the tests read the Environment it registers.
package itests
