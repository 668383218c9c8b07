package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"password_hash",
			"roles",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"password_hash": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"roles": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "string",
					"enum": []string{
						"USER",
						"ADMIN",
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
