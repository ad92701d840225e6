// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package filterbind

import "github.com/pkg/errors"

// BindError wraps a failure found while walking the normalized parse tree
// against a message descriptor: field not found, bad index, non-primitive
// terminal, incompatible operand kinds, or a LIKE/MATCH operand that is not
// string-typed. Every BindError leaves the previous compiled expression
// (if any) untouched, per §4.7's "on failure, the previous expression is
// preserved".
type BindError struct {
	msg string
}

func (e *BindError) Error() string { return e.msg }

func bindErrorf(format string, args ...interface{}) error {
	return &BindError{msg: errors.Errorf(format, args...).Error()}
}

// BadParameterError covers a %N reference with no matching parameter text, or
// a parameter whose text fails to re-parse as a literal.
type BadParameterError struct {
	msg string
}

func (e *BadParameterError) Error() string { return e.msg }

func badParameterf(format string, args ...interface{}) error {
	return &BadParameterError{msg: errors.Errorf(format, args...).Error()}
}
