package bar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mockQuestDB "github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/questdb/mock"
)

func testBar(now time.Time) *Bar {
	return &Bar{
		Timestamp: now,
		Symbol:    "MSFT",
		Venue:     "arca",
		Series:    "bid_bars_L1",
		Open:      100.1,
		High:      100.9,
		Low:       99.8,
		Close:     100.5,
	}
}

func TestBar_Store(t *testing.T) {
	query := `INSERT INTO bars (timestamp, symbol, venue, series, open, high, low, close, volume)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	testCases := []struct {
		name     string
		mockFn   func(testData *Bar, mock *mockQuestDB.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
		testData *Bar
	}{
		{
			name: "success",
			mockFn: func(testData *Bar, mock *mockQuestDB.MockQuestDBClient) {
				mock.EXPECT().Exec(
					gomock.Any(),
					query,
					testData.Timestamp,
					testData.Symbol,
					testData.Venue,
					testData.Series,
					testData.Open,
					testData.High,
					testData.Low,
					testData.Close,
					testData.Volume,
				).Return(nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
			testData: testBar(now),
		},
		{
			name: "error - exec fails",
			mockFn: func(testData *Bar, mock *mockQuestDB.MockQuestDBClient) {
				mock.EXPECT().Exec(
					gomock.Any(),
					query,
					testData.Timestamp,
					testData.Symbol,
					testData.Venue,
					testData.Series,
					testData.Open,
					testData.High,
					testData.Low,
					testData.Close,
					testData.Volume,
				).Return(errors.New("exec failed"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
			testData: testBar(now),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mockQuestDB.NewMockQuestDBClient(ctrl)
			tc.mockFn(tc.testData, mockClient)

			repo := NewRepository(mockClient)
			err := repo.Store(context.Background(), tc.testData)
			tc.assertFn(t, err)
		})
	}
}

func TestBar_StoreBatch(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		mockFn   func(testData []*Bar, mock *mockQuestDB.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
		testData []*Bar
	}{
		{
			name: "success",
			mockFn: func(testData []*Bar, mock *mockQuestDB.MockQuestDBClient) {
				mock.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(2), nil)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
			testData: []*Bar{testBar(now), testBar(now.Add(time.Second))},
		},
		{
			name: "empty batch skips the round trip",
			mockFn: func(testData []*Bar, mock *mockQuestDB.MockQuestDBClient) {
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
			testData: nil,
		},
		{
			name: "error - copy fails",
			mockFn: func(testData []*Bar, mock *mockQuestDB.MockQuestDBClient) {
				mock.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("copy failed"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
			testData: []*Bar{testBar(now)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := mockQuestDB.NewMockQuestDBClient(ctrl)
			tc.mockFn(tc.testData, mockClient)

			repo := NewRepository(mockClient)
			err := repo.StoreBatch(context.Background(), tc.testData)
			tc.assertFn(t, err)
		})
	}
}
