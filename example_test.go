package outreach_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	outreach "github.com/alnah/go-outreach"
)

// Example demonstrates compiling spreadsheet rows into the platform's
// sequence payload.
func Example() {
	rows := []outreach.SequenceRow{
		{
			StepNumber:   "1",
			VariantLabel: "A",
			Subject:      "Quick question for `brand`",
			Body:         "Hi `first name`,\n\nDoes **returns** eat your margin?",
		},
		{
			StepNumber: "2",
			DelayDays:  "3",
			Subject:    "Following up",
			Body:       "Just bumping this.",
		},
	}

	comp := outreach.NewCompiler()
	steps, err := comp.Compile(context.Background(), rows)
	if err != nil {
		log.Fatal(err)
	}

	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(steps); err != nil {
		log.Fatal(err)
	}
	fmt.Print(payload.String())
	// Output:
	// [
	//   {
	//     "seq_number": 1,
	//     "seq_delay_details": {
	//       "delay_in_days": 0
	//     },
	//     "seq_variants": [
	//       {
	//         "subject": "Quick question for {{merchant_name}}",
	//         "email_body": "Hi {{first_name}},<br><br>Does <strong>returns</strong> eat your margin?",
	//         "variant_label": "A",
	//         "variant_distribution_percentage": 100
	//       }
	//     ]
	//   },
	//   {
	//     "seq_number": 2,
	//     "seq_delay_details": {
	//       "delay_in_days": 3
	//     },
	//     "seq_variants": [
	//       {
	//         "subject": "Following up",
	//         "email_body": "Just bumping this.",
	//         "variant_label": "",
	//         "variant_distribution_percentage": 100
	//       }
	//     ]
	//   }
	// ]
}

// ExampleWithTokenTable shows a custom substitution vocabulary.
func ExampleWithTokenTable() {
	table := []outreach.TokenMapping{
		{Token: "city", Replacement: "{{city}}"},
	}
	comp := outreach.NewCompiler(outreach.WithTokenTable(table))

	steps, err := comp.Compile(context.Background(), []outreach.SequenceRow{
		{StepNumber: "1", Subject: "Hello from `city`", Body: "Body"},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(steps[0].Variants[0].Subject)
	// Output:
	// Hello from {{city}}
}
