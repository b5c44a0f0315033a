package storage_test

import (
	"testing"

	"github.com/claimex/backend/config"
	"github.com/claimex/backend/pkg/storage"
	"github.com/stretchr/testify/require"
)

func TestS3Storage_PublicURL(t *testing.T) {
	s, err := storage.NewS3Storage(config.S3Configs{
		Region:         "us-east-1",
		Endpoint:       "http://localhost:9000",
		PublicEndpoint: "https://cdn.claimex.com/",
	})
	require.NoError(t, err)

	require.Equal(t,
		"https://cdn.claimex.com/airdrop-images/airdrop-1700000000000.png",
		s.PublicURL("airdrop-images", "airdrop-1700000000000.png"),
	)
}
