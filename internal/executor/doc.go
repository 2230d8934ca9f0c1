/*
Package executor sends requests to the messaging API and turns their outcome into text.

# Overview

A Dispatcher is built from a config.Config value and owns the HTTP client:
  - GET endpoints are sent without a body
  - POST endpoints carry the payload as JSON (application/json; charset=UTF-8)
  - Every request gets an X-Request-Id used in the logs

# Errors

Do reports two classes of failure:

NetworkError:
  - the request never completed (DNS, refused connection, timeout)
  - the body could not be parsed as JSON
  - Detail() gives an actionable description of the root cause

APIError:
  - the envelope parsed but its success flag is false
  - Message carries the server's own error text

# Controls

Locks hands out one Token per control. While a control holds its token,
a second Dispatch for the same control fails with ErrBusy; other controls
are unaffected. Dispatch releases the token exactly once whatever the outcome.

# Rendering

Render maps an outcome to a Rendering (kind, title, text) for the result
area. LoadingMessage gives the caption shown while a request is in flight.
*/
package executor
