package currency_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"asistente/app/client/rates"
	"asistente/app/service/currency"
	"asistente/app/service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	result float64
	err    error

	calls []conversionCall
}

type conversionCall struct {
	from   string
	to     string
	amount float64
}

func (f *fakeConverter) Convert(_ context.Context, from, to string, amount float64) (float64, error) {
	f.calls = append(f.calls, conversionCall{from, to, amount})

	if f.err != nil {
		return 0, f.err
	}

	return f.result, nil
}

func TestResolveFormatsConversion(t *testing.T) {
	converter := &fakeConverter{result: 370.5}
	svc := currency.NewService(converter)
	ses := &session.Session{}

	answer, ok := svc.Resolve(context.Background(), ses, "100 usd a pen")

	require.True(t, ok)
	assert.Equal(t, "💱 100.00 USD = 370.50 PEN", answer)

	require.Len(t, converter.calls, 1)
	assert.Equal(t, conversionCall{"USD", "PEN", 100}, converter.calls[0])
}

func TestResolveMapsAliases(t *testing.T) {
	converter := &fakeConverter{result: 27.8}
	svc := currency.NewService(converter)

	_, ok := svc.Resolve(context.Background(), &session.Session{}, "100 soles a dólares")

	require.True(t, ok)
	require.Len(t, converter.calls, 1)
	assert.Equal(t, "PEN", converter.calls[0].from)
	assert.Equal(t, "USD", converter.calls[0].to)
	assert.Equal(t, float64(100), converter.calls[0].amount)
}

func TestResolveDefaultsToPenUsd(t *testing.T) {
	converter := &fakeConverter{result: 13.5}
	svc := currency.NewService(converter)

	_, ok := svc.Resolve(context.Background(), &session.Session{}, "cuánto son 50 en otra moneda")

	require.True(t, ok)
	require.Len(t, converter.calls, 1)
	assert.Equal(t, "PEN", converter.calls[0].from)
	assert.Equal(t, "USD", converter.calls[0].to)
}

func TestResolveNormalizesShorthand(t *testing.T) {
	converter := &fakeConverter{result: 1}
	svc := currency.NewService(converter)

	_, ok := svc.Resolve(context.Background(), &session.Session{}, "100,5 usd a pen")

	require.True(t, ok)
	require.Len(t, converter.calls, 1)
	assert.Equal(t, 100.5, converter.calls[0].amount)
}

func TestResolveDollarSignShorthand(t *testing.T) {
	converter := &fakeConverter{result: 1}
	svc := currency.NewService(converter)

	_, ok := svc.Resolve(context.Background(), &session.Session{}, "100 $ a soles")

	require.True(t, ok)
	require.Len(t, converter.calls, 1)
	assert.Equal(t, "USD", converter.calls[0].from)
	assert.Equal(t, "PEN", converter.calls[0].to)
}

func TestResolveRecordsSession(t *testing.T) {
	converter := &fakeConverter{result: 92.3}
	svc := currency.NewService(converter)
	ses := &session.Session{}

	_, ok := svc.Resolve(context.Background(), ses, "100 eur a usd")

	require.True(t, ok)
	require.NotNil(t, ses.LastAmount)
	assert.Equal(t, float64(100), *ses.LastAmount)
	assert.Equal(t, "EUR", ses.LastCurrency)
}

func TestResolveEllipsisUsesSession(t *testing.T) {
	converter := &fakeConverter{result: 46.2}
	svc := currency.NewService(converter)

	ses := &session.Session{}
	ses.RememberAmount(50, "USD")

	_, ok := svc.Resolve(context.Background(), ses, "¿y en euros?")

	require.True(t, ok)
	require.Len(t, converter.calls, 1)
	assert.Equal(t, float64(50), converter.calls[0].amount)
	assert.Equal(t, "USD", converter.calls[0].from)
}

func TestResolveEllipsisWithoutSessionFails(t *testing.T) {
	converter := &fakeConverter{result: 1}
	svc := currency.NewService(converter)

	_, ok := svc.Resolve(context.Background(), &session.Session{}, "¿y en euros?")

	assert.False(t, ok)
	assert.Empty(t, converter.calls)
}

func TestResolveUnparseableTextFails(t *testing.T) {
	converter := &fakeConverter{result: 1}
	svc := currency.NewService(converter)

	answer, ok := svc.Resolve(context.Background(), &session.Session{}, "hola, ¿cómo estás?")

	assert.False(t, ok)
	assert.Empty(t, answer)
	assert.Empty(t, converter.calls)
}

func TestResolveRateLookupFailureFallsThrough(t *testing.T) {
	converter := &fakeConverter{err: fmt.Errorf("response has no result field")}
	svc := currency.NewService(converter)

	answer, ok := svc.Resolve(context.Background(), &session.Session{}, "100 usd a pen")

	assert.False(t, ok)
	assert.Empty(t, answer)
}

func TestResolveNetworkFailureReportsToUser(t *testing.T) {
	converter := &fakeConverter{err: fmt.Errorf("%w: connection refused", rates.ErrUnavailable)}
	svc := currency.NewService(converter)

	answer, ok := svc.Resolve(context.Background(), &session.Session{}, "100 usd a pen")

	require.True(t, ok)
	assert.Equal(t, "❌ No se pudo obtener la tasa de cambio en este momento.", answer)
}

func TestResolveWrappedUnavailable(t *testing.T) {
	converter := &fakeConverter{err: fmt.Errorf("request: %w", rates.ErrUnavailable)}
	svc := currency.NewService(converter)

	_, ok := svc.Resolve(context.Background(), &session.Session{}, "20 eur a pen")

	assert.True(t, ok)
	assert.True(t, errors.Is(converter.err, rates.ErrUnavailable))
}
