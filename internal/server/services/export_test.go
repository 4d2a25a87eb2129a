package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	sc "github.com/dmitrijs2005/passkeeper/internal/server/config"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Fake struct {
	options  s3.Options
	bucket   string
	key      string
	body     []byte
	presign  string
	loadErr  error
	putErr   error
	signErr  error
	putCalls int
}

// install swaps the package seams for fakes and restores them on cleanup.
func (f *s3Fake) install(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	origSign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
		presignGetObject = origSign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, f.loadErr
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		f.options = o
		return s3.New(o)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		f.putCalls++
		if f.putErr != nil {
			return nil, f.putErr
		}
		f.bucket = aws.ToString(in.Bucket)
		f.key = aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		if err != nil {
			return nil, err
		}
		f.body = b
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if f.signErr != nil {
			return nil, f.signErr
		}
		f.presign = "https://s3.local/" + aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key) + "?sig=x"
		return &v4.PresignedHTTPRequest{URL: f.presign, Method: "GET"}, nil
	}
}

func exportConfig() *sc.Config {
	c := &sc.Config{}
	c.LoadDefaults()
	c.S3Bucket = "vaults"
	c.S3RootUser = "minio"
	c.S3RootPassword = "minio-secret"
	return c
}

func TestExportService_Disabled(t *testing.T) {
	c := &sc.Config{}
	c.LoadDefaults()

	fake := &s3Fake{}
	fake.install(t)

	s := NewExportService(repomanager.NewMemoryRepositoryManager(), c, nopLogger{})

	_, err := s.Export(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrExportDisabled)
	assert.Zero(t, fake.putCalls)

	_, err = NewExportService(repomanager.NewMemoryRepositoryManager(), exportConfig(), nopLogger{}).Export(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestExportService_Success(t *testing.T) {
	ctx := context.Background()
	m := repomanager.NewMemoryRepositoryManager()
	records := NewRecordService(m, newTestCipher(t), nopLogger{})

	_, err := records.Add(ctx, "u1", NewRecord{Site: "a.com", Username: "alice", Password: "hunter2", MasterKey: "mk"})
	require.NoError(t, err)
	_, err = records.Add(ctx, "u1", NewRecord{Site: "b.com", Username: "bob", Password: "letmein", MasterKey: "mk"})
	require.NoError(t, err)
	_, err = records.Add(ctx, "u2", NewRecord{Site: "c.com", Username: "carol", Password: "other", MasterKey: "mk"})
	require.NoError(t, err)

	fake := &s3Fake{}
	fake.install(t)

	s := NewExportService(m, exportConfig(), nopLogger{})

	before := time.Now()
	res, err := s.Export(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Records)
	assert.Equal(t, fake.presign, res.URL)
	assert.Equal(t, fake.key, res.Key)
	assert.True(t, strings.HasPrefix(res.Key, "exports/u1/"))
	assert.True(t, strings.HasSuffix(res.Key, ".json"))
	assert.Equal(t, "vaults", fake.bucket)
	assert.WithinDuration(t, before.Add(15*time.Minute), res.ExpiresAt, time.Minute)

	// no endpoint configured: default AWS addressing
	assert.Nil(t, fake.options.BaseEndpoint)
	assert.False(t, fake.options.UsePathStyle)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(fake.body, &snap))
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Equal(t, "u1", snap.AccountID)
	require.Len(t, snap.Records, 2)
	assert.Equal(t, "a.com", snap.Records[0].Site)
	assert.Equal(t, "b.com", snap.Records[1].Site)

	for _, r := range snap.Records {
		assert.NotEmpty(t, r.Ciphertext)
	}
	assert.NotContains(t, string(fake.body), "hunter2")
	assert.NotContains(t, string(fake.body), "letmein")
	assert.NotContains(t, string(fake.body), "carol")

	// ciphertexts in the snapshot still open with the master key
	got, err := newTestCipher(t).Decrypt(snap.Records[0].Ciphertext, "mk")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestExportService_EmptyVault(t *testing.T) {
	fake := &s3Fake{}
	fake.install(t)

	s := NewExportService(repomanager.NewMemoryRepositoryManager(), exportConfig(), nopLogger{})

	res, err := s.Export(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, res.Records)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(fake.body, &snap))
	assert.NotNil(t, snap.Records)
	assert.Empty(t, snap.Records)
}

func TestExportService_CustomEndpoint(t *testing.T) {
	fake := &s3Fake{}
	fake.install(t)

	c := exportConfig()
	c.S3BaseEndpoint = "http://localhost:9000"

	_, err := NewExportService(repomanager.NewMemoryRepositoryManager(), c, nopLogger{}).Export(context.Background(), "u1")
	require.NoError(t, err)

	require.NotNil(t, fake.options.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *fake.options.BaseEndpoint)
	assert.True(t, fake.options.UsePathStyle)
}

func TestExportService_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name  string
		fake  *s3Fake
		match string
	}{
		{"config", &s3Fake{loadErr: boom}, "s3 client"},
		{"upload", &s3Fake{putErr: boom}, "upload snapshot"},
		{"presign", &s3Fake{signErr: boom}, "presign snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fake.install(t)

			_, err := NewExportService(repomanager.NewMemoryRepositoryManager(), exportConfig(), nopLogger{}).Export(context.Background(), "u1")
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.match)
		})
	}
}

func TestExportService_DumpError(t *testing.T) {
	fake := &s3Fake{}
	fake.install(t)

	m := newFakeManager()
	m.records = &fakeRecordsRepo{err: errors.New("db down")}

	_, err := NewExportService(m, exportConfig(), nopLogger{}).Export(context.Background(), "u1")
	assert.ErrorContains(t, err, "db down")
	assert.Zero(t, fake.putCalls)
}

func TestGetRandomStorageKey(t *testing.T) {
	a := GetRandomStorageKey("u1")
	b := GetRandomStorageKey("u1")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "exports/u1/"))
}
