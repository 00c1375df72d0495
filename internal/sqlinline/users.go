package sqlinline

const QInsertUser = `--sql 830499e1-7db9-47dc-b6a3-694a491b97c8
insert into users (id, name, email, password_hash, role, university, department, graduation_year, location, avatar)
values ($1::uuid, $2::text, lower($3::text), $4::text, $5::text, nullif($6::text, ''), nullif($7::text, ''), nullif($8::int, 0), nullif($9::text, ''), nullif($10::text, ''))
returning id;
`

const QSelectUserIDByEmail = `--sql 4e6c5564-ba7c-4014-b2a8-eb1c96e8ae9a
select id
from users
where lower(email) = lower($1::text)
limit 1;
`

const QSelectUserByEmail = `--sql 91d34103-da59-47c9-bb6f-08fc043fb495
select id, name, email, coalesce(password_hash, ''), role, coalesce(university, ''), coalesce(department, ''), coalesce(graduation_year, 0), coalesce(location, ''), coalesce(avatar, '')
from users
where lower(email) = lower($1::text)
limit 1;
`

const QSelectUserByID = `--sql 9c6b9f10-75ce-4fe4-b948-6846442b2136
select id, name, email, role, coalesce(university, ''), coalesce(department, ''), coalesce(graduation_year, 0), coalesce(location, ''), coalesce(avatar, '')
from users
where id = $1::uuid
limit 1;
`

const QAdminListUsers = `--sql 2ab3dc4d-26f2-422f-8c5d-53134bfd9c23
select id, name, email, role, coalesce(university, ''), coalesce(department, ''), coalesce(graduation_year, 0), coalesce(location, ''), coalesce(avatar, '')
from users
order by name asc;
`
