// Package portal talks to the SALT Web Manager's proposal endpoint. It wraps
// a rendered block document in the proposal ZIP the endpoint expects, posts
// it as a multipart form, and surfaces portal-side rejections as errors.
package portal
