// Package mocks holds gomock doubles for the service collaborators.
package mocks

//go:generate mockgen -destination=cache_mock.go -package=mocks sankofa/internal/infrastructure/cache Cache
//go:generate mockgen -destination=publisher_mock.go -package=mocks sankofa/internal/events Publisher
//go:generate mockgen -destination=notifier_mock.go -package=mocks sankofa/internal/infrastructure/notification Notifier
//go:generate mockgen -destination=gateway_mock.go -package=mocks -mock_names=Gateway=MockGateway sankofa/internal/usecase/donation Gateway
//go:generate mockgen -destination=provider_mock.go -package=mocks sankofa/internal/usecase/assistant Provider
