// Package hapioclient provides the primary entry point for constructing a
// Hapio scheduling API client that implements the hapio.Client interface.
//
// It layers configuration and HTTP transport on top of the repository
// interfaces and entity types defined in the hapio package. Most
// applications should import hapioclient to build a client, then use the
// returned hapio.Client to reach the repositories, for example Locations(),
// Resources(), Services() or Bookings().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/hapio-client/pkg/hapio"
//	  "github.com/fivetwenty-io/hapio-client/pkg/hapioclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := hapioclient.NewWithToken(ctx, "your-api-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or against another region:
//	  cli, err = hapioclient.New(ctx, &hapio.Config{
//	    BaseURL: "https://us-east-1.hapio.net/v1/",
//	    Token:   "your-api-token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  page, err := cli.Locations().List(ctx, hapio.NewQueryParams().WithPerPage(10))
//	  if err != nil { log.Fatal(err) }
//
//	  for location := range page.All() {
//	    log.Println(location.Name())
//	  }
//	}
//
// # Base URL
//
// The base URL defaults to the eu-central-1 endpoint. A URL without a
// scheme gets https, and a trailing slash is added so relative repository
// paths such as "locations" resolve below it.
//
// # Errors
//
// Failed requests surface as *hapio.RequestError; a 422 response surfaces as
// *hapio.ValidationError, which also matches RequestError through errors.As.
package hapioclient
