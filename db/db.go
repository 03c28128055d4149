package db

import (
	"strconv"

	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/util"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// BatchGetItem takes at most 100 keys per request
const maxBatch = 100

type MetadataSource interface {
	GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error)
}

type DynamoSource struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoSource(endpoint, table string) (*DynamoSource, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return NewDynamoSourceWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoSourceWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoSource {
	return &DynamoSource{client: client, table: table}
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func parseItem(item map[string]*dynamodb.AttributeValue) model.MidiMetadata {
	var s model.MidiMetadata
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		s.Year = uint(year)
	}
	s.Artist = stringAttr(item, "Artist")
	s.Release = stringAttr(item, "Release")
	s.Title = stringAttr(item, "Title")
	return s
}

// GetMidiMetadatas looks filenames up by their PK. Files without an item
// are simply missing from the result.
func (d *DynamoSource) GetMidiMetadatas(filenames []string) (map[string]model.MidiMetadata, error) {
	res := make(map[string]model.MidiMetadata)

	for start := 0; start < len(filenames); start += maxBatch {
		end := util.Min(start+maxBatch, len(filenames))

		var keys []map[string]*dynamodb.AttributeValue
		for _, filename := range filenames[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(filename)},
			})
		}

		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				d.table: {Keys: keys},
			},
		}
		dbres, err := d.client.BatchGetItem(input)
		if err != nil {
			return nil, errors.Wrap(err, "Error from DynamoDB")
		}

		for _, v := range dbres.Responses[d.table] {
			pk := stringAttr(v, "PK")
			if pk == "" {
				continue
			}
			res[pk] = parseItem(v)
		}
	}

	return res, nil
}
