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

package filtertree

// emptyCondition is the distinguished singleton root used by an unset filter
// (accept-all); it always evaluates True and ignores Reset.
type emptyCondition struct{}

// Empty is the distinguished singleton condition that always evaluates True,
// used as the root of a filter instance with no expression attached (§3, §4.7).
var Empty Condition = &emptyCondition{}

func (*emptyCondition) State() State            { return True }
func (*emptyCondition) Reset()                  {}
func (*emptyCondition) setParent(Condition)     {}
func (*emptyCondition) childChanged(Condition)  {}
