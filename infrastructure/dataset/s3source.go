package dataset

import (
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

// ObjectGetter é o subconjunto do cliente S3 usado pelo S3Source
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source lê os logs de um bucket S3, opcionalmente sob um prefixo
type S3Source struct {
	client ObjectGetter
	bucket string
	prefix string
}

// NewS3Source cria um S3Source com as credenciais padrão da AWS
func NewS3Source(ctx context.Context, bucket, region, prefix string) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar configuração da AWS")
	}

	return NewS3SourceWithClient(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func NewS3SourceWithClient(client ObjectGetter, bucket, prefix string) *S3Source {
	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Source) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := s.key(name)

	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errors.Wrapf(ErrSourceNotFound, "s3://%s/%s", s.bucket, key)
		}
		return nil, errors.Wrapf(err, "erro ao ler s3://%s/%s", s.bucket, key)
	}

	return resp.Body, nil
}
