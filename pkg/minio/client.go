package minio

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"path"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStater is the part of the MinIO client the resolver uses.
type ObjectStater interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minioSDK.StatObjectOptions) (minioSDK.ObjectInfo, error)
}

// Resolver fills FileRef metadata from the object store, so size and type
// checks run on what was actually uploaded rather than on client claims.
// It never reads object bytes.
type Resolver struct {
	api    ObjectStater
	bucket string
}

func NewResolver(api ObjectStater, bucket string) *Resolver {
	return &Resolver{api: api, bucket: bucket}
}

func New(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*Resolver, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	client, err := minioSDK.New(endpoint, &minioSDK.Options{
		Creds:     credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:    useSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("MinIO file resolver ready (endpoint=%s bucket=%s)", endpoint, bucket)
	return NewResolver(client, bucket), nil
}

func (r *Resolver) Resolve(ctx context.Context, ref form.FileRef) (form.FileRef, error) {
	const op = "minio.Resolve"
	info, err := r.api.StatObject(ctx, r.bucket, ref.FileID, minioSDK.StatObjectOptions{})
	if err != nil {
		if minioSDK.ToErrorResponse(err).Code == "NoSuchKey" {
			return ref, errs.New(errs.KindNotFound, op, "file %s not found", ref.FileID)
		}
		return ref, errs.Wrap(errs.KindStorageUnavailable, op, err)
	}
	out := ref
	out.Size = info.Size
	if info.ContentType != "" {
		out.ContentType = info.ContentType
	}
	if out.Name == "" {
		out.Name = path.Base(info.Key)
	}
	return out, nil
}
