// Package mocks provides shared test doubles for the store, auth and service
// interfaces.
//
// Store and service mocks are built on testify/mock and are configured with
// On(...).Return(...). Store mocks return themselves from WithTx unless an
// expectation for WithTx is registered, so services that open a transaction
// keep talking to the same mock. The auth doubles use function fields with
// fixed default values.
package mocks
