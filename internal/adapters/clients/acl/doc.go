// Package acl is the anti-corruption layer between the upstream posts API
// and the domain.
//
// Upstream JSON is decoded into unexported DTOs and translated into
// [domain.Post] and [domain.Comment] values; DTOs never leave the package.
//
// # Failure policy
//
// Every adapter call goes through [BaseAdapter.Fetch], which turns a non-2xx
// response into a [clients.StatusError]. What happens next depends on the
// resource:
//
//   - Posts are primary: [PostsClient.GetPost] classifies every failure into
//     a [domain.Error] (404 "Resource Not Found", upstream status with
//     "External API Error", or 500 "Internal Server Error").
//   - Comments are enrichment: [PostsClient.ListComments] logs the failure
//     and returns an empty list. Callers cannot tell "no comments" from
//     "comments unavailable".
//   - [PostsClient.ListPosts] returns failures unclassified and leaves them
//     to the HTTP error translator.
package acl
