package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/panchhi-sarees/storefront-api/internal/domain"
)

// SignupRepo manages staged signup records awaiting OTP verification.
// PK: email, SK: kind ("customer" | "admin"). Put is a full-item overwrite,
// which is exactly the replace-or-create semantics the flow needs: only the
// most recently issued code for an email survives.
type SignupRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSignupRepo(client *dynamodb.Client, tableName string) *SignupRepo {
	return &SignupRepo{client: client, tableName: tableName}
}

func (r *SignupRepo) Put(ctx context.Context, p *domain.PendingSignup) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal pending signup: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SignupRepo) Get(ctx context.Context, email, kind string) (*domain.PendingSignup, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("email", email, "kind", kind),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("pending signup not found: %w", domain.ErrNotFound)
	}
	var p domain.PendingSignup
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SignupRepo) Delete(ctx context.Context, email, kind string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("email", email, "kind", kind),
	})
	return err
}
