// Package framework contains the low-level implementation of smoke-test
// infrastructure that is not specific to any particular endpoint being tested.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T,
// allowing pieces of check logic to be associated with a test identifier and to
// accumulate success/failure state along with diagnostic details.
//
// 2. Each leaf check that runs produces exactly one immutable TestResult; the
// ordered list of results drives the console summary and the process exit code.
//
// The domain-specific code that knows what is being tested is responsible for
// building the HTTP requests, classifying the responses, and providing a
// domain-specific API on top of the test context.
package framework
